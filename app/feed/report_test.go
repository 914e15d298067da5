package feed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEpisodes(t *testing.T) {
	result, err := newTestParser().FromFeed(loadFixture(t), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderEpisodes(&buf, result)
	out := buf.String()

	assert.Contains(t, strings.ToLower(out), "test podcast")
	for _, column := range []string{"title", "published", "duration", "order"} {
		assert.Contains(t, strings.ToLower(out), column)
	}
	assert.Contains(t, out, "Episode 2")
	assert.Contains(t, out, "1:02:03")
	assert.Contains(t, out, "45:00")
	assert.Contains(t, strings.ToLower(out), "2 episodes")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Episode 2")), bytes.Index(buf.Bytes(), []byte("Episode 1")))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:59", formatDuration(59))
	assert.Equal(t, "45:00", formatDuration(2700))
	assert.Equal(t, "1:02:03", formatDuration(3723))
	assert.Equal(t, "", formatDuration(nil))
	assert.Equal(t, "unknown", formatDuration("unknown"))
}

func TestDisplay(t *testing.T) {
	node := &podcast.Node{Name: "title", Text: "Hello"}
	assert.Equal(t, "Hello", display(node))
	assert.Equal(t, "Hello", display(podcast.Nodes{node}))
	assert.Equal(t, "", display(podcast.Nodes{}))
	assert.Equal(t, "3", display(3))
	assert.Equal(t, "", display(nil))
}
