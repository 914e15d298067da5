package podcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(values ...string) Nodes {
	nodes := make(Nodes, 0, len(values))
	for _, v := range values {
		nodes = append(nodes, el("x", v))
	}
	return nodes
}

func TestCleanDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"01:02:03", 3723},
		{"02:00", 120},
		{"45", 45},
		{" 1:00:00 ", 3600},
		{"12.5", 12},
		{"1e3", 1},
		{"1:30min", 90},
		{"abc", nil},
		{"1:xx", nil},
		{":30", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean("duration", texts(tt.raw)))
		})
	}
}

func TestCleanExplicit(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"YES", true},
		{"explicit", true},
		{"True", true},
		{"Clean", false},
		{"no", false},
		{"FALSE", false},
		{"maybe", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean("explicit", texts(tt.raw)))
		})
	}
}

func TestCleanYesFlags(t *testing.T) {
	for _, field := range []string{"blocked", "complete"} {
		assert.Equal(t, true, Clean(field, texts("Yes")), field)
		assert.Equal(t, true, Clean(field, texts(" yes ")), field)
		assert.Equal(t, false, Clean(field, texts("No")), field)
		assert.Equal(t, false, Clean(field, texts("")), field)
	}
}

func TestCleanEnclosure(t *testing.T) {
	raw := Nodes{elAttrs("enclosure", map[string]string{
		"url":    "https://e.com/ep1.mp3",
		"length": "12345",
		"type":   "audio/mpeg",
	})}

	assert.Equal(t, Enclosure{Length: "12345", Type: "audio/mpeg", URL: "https://e.com/ep1.mp3"}, Clean("enclosure", raw))
}

func TestCleanOwner(t *testing.T) {
	full := Nodes{el("itunes:owner", "",
		el("itunes:name", "Jane"),
		el("itunes:email", "jane@e.com"),
	)}
	owner, ok := Clean("owner", full).(Owner)
	require.True(t, ok)
	require.NotNil(t, owner.Name)
	require.NotNil(t, owner.Email)
	assert.Equal(t, "Jane", *owner.Name)
	assert.Equal(t, "jane@e.com", *owner.Email)

	nameOnly := Nodes{el("itunes:owner", "", el("itunes:name", "Jane"))}
	owner = Clean("owner", nameOnly).(Owner)
	require.NotNil(t, owner.Name)
	assert.Nil(t, owner.Email)
}

func TestCleanPassthrough(t *testing.T) {
	author := texts("Jane")
	assert.Equal(t, author, Clean("author", author))
	assert.Equal(t, "https://e.com/a.png", Clean("imageURL", "https://e.com/a.png"))
}

func TestCleanDefault(t *testing.T) {
	assert.Equal(t, "first", Clean("title", texts("first", "second")))
	assert.Equal(t, "Tech>Startups", Clean("categories", []string{"Tech>Startups", "Comedy"}))
	assert.Equal(t, Funding{Value: "a"}, Clean("funding", []Funding{{Value: "a"}}))
	assert.Equal(t, []Funding{}, Clean("funding", []Funding{}))
	assert.Equal(t, Chapters{URL: "u"}, Clean("chapters", Chapters{URL: "u"}))
	assert.Equal(t, "abc", Clean("guid", "abc"))

	structured := elAttrs("image", map[string]string{"href": "x"})
	assert.Same(t, structured, Clean("image", Nodes{structured}))
}
