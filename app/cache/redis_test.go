package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	url1 := "https://example.com/feed.xml"
	url2 := "https://different.com/feed.xml"

	assert.Equal(t, ParseKey(url1, nil), ParseKey(url1, nil))
	assert.NotEqual(t, ParseKey(url1, nil), ParseKey(url2, nil))
	assert.True(t, strings.HasPrefix(ParseKey(url1, nil), "parse:"))

	opts := &podcast.Options{Required: &podcast.FieldSet{Meta: []string{"title"}}}
	assert.NotEqual(t, ParseKey(url1, nil), ParseKey(url1, opts))
	assert.Equal(t, ParseKey(url1, opts), ParseKey(url1, &podcast.Options{Required: &podcast.FieldSet{Meta: []string{"title"}}}))
}

func TestNewCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewCache(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}

// Runs against a live server when REDIS_ADDR is set.
func TestCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewCache(ctx, addr)
	require.NoError(t, err)
	defer c.Close()

	key := ParseKey("https://example.com/"+t.Name(), nil)

	_, ok, err := c.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetResult(ctx, key, []byte(`{"meta":{}}`), time.Minute))
	data, ok, err := c.GetResult(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"meta":{}}`, string(data))

	assert.Equal(t, "healthy", c.Health(ctx)["status"])
}
