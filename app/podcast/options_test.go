package podcast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultMetaFields, cfg.Fields(Meta))
	assert.Equal(t, defaultEpisodeFields, cfg.Fields(Episodes))
	assert.Empty(t, cfg.Required(Meta))
	assert.Empty(t, cfg.Required(Episodes))
	assert.Equal(t, []string{"funding", "guid"}, cfg.Uncleaned(Meta))
	assert.Equal(t, []string{"funding", "guid", "transcript"}, cfg.Uncleaned(Episodes))
}

func TestBuildConfigOverridesOnlyGivenLists(t *testing.T) {
	cfg, err := BuildConfig(&Options{
		Fields:   &FieldSet{Meta: []string{"title", "link"}},
		Required: &FieldSet{Episodes: []string{"title"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "link"}, cfg.Fields(Meta))
	assert.Equal(t, defaultEpisodeFields, cfg.Fields(Episodes))
	assert.Empty(t, cfg.Required(Meta))
	assert.Equal(t, []string{"title"}, cfg.Required(Episodes))
	assert.Equal(t, defaultUncleanedEpisodes, cfg.Uncleaned(Episodes))
}

func TestBuildConfigEmptyListOverrides(t *testing.T) {
	cfg, err := BuildConfig(&Options{Uncleaned: &FieldSet{Meta: []string{}}})
	require.NoError(t, err)

	assert.Empty(t, cfg.Uncleaned(Meta))
	assert.False(t, cfg.IsUncleaned(Meta, "guid"))
	assert.True(t, cfg.IsUncleaned(Episodes, "guid"))
}

func TestBuildConfigDefaultSentinel(t *testing.T) {
	cfg, err := BuildConfig(&Options{
		Fields: &FieldSet{
			Meta:     []string{"default", "ttl", "title", "ttl"},
			Episodes: []string{"itunes:season", "default"},
		},
	})
	require.NoError(t, err)

	wantMeta := append(append([]string{}, defaultMetaFields...), "ttl")
	assert.Equal(t, wantMeta, cfg.Fields(Meta))

	wantEpisodes := append(append([]string{}, defaultEpisodeFields...), "itunes:season")
	assert.Equal(t, wantEpisodes, cfg.Fields(Episodes))

	assert.NotContains(t, cfg.Fields(Meta), DefaultSentinel)
	assert.NotContains(t, cfg.Fields(Episodes), DefaultSentinel)
}

func TestBuildConfigDoesNotShareDefaults(t *testing.T) {
	cfg, err := BuildConfig(&Options{Fields: &FieldSet{Meta: []string{"default", "extra"}}})
	require.NoError(t, err)
	assert.Contains(t, cfg.Fields(Meta), "extra")

	fields := cfg.Fields(Meta)
	fields[0] = "mutated"

	fresh := DefaultConfig()
	assert.Equal(t, "title", fresh.Fields(Meta)[0])
	assert.NotContains(t, fresh.Fields(Meta), "extra")
	assert.Equal(t, "title", cfg.Fields(Meta)[0])
}

func TestBuildConfigRejectsBlankFieldNames(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"empty field", &Options{Fields: &FieldSet{Meta: []string{"title", ""}}}},
		{"whitespace field", &Options{Required: &FieldSet{Episodes: []string{"pub date"}}}},
		{"uncleaned blank", &Options{Uncleaned: &FieldSet{Meta: []string{" "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := BuildConfig(tt.opts)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOptions))

			var optsErr *OptionsError
			assert.True(t, errors.As(err, &optsErr))
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]byte(`
fields:
  meta: [default, ttl]
required:
  meta: [title]
`))
	require.NoError(t, err)
	require.NotNil(t, opts.Fields)
	assert.Equal(t, []string{"default", "ttl"}, opts.Fields.Meta)
	assert.Nil(t, opts.Fields.Episodes)
	assert.Equal(t, []string{"title"}, opts.Required.Meta)
	assert.Nil(t, opts.Uncleaned)
}

func TestParseOptionsJSON(t *testing.T) {
	opts, err := ParseOptions([]byte(`{"uncleaned": {"episodes": ["duration"]}}`))
	require.NoError(t, err)

	cfg, err := BuildConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"duration"}, cfg.Uncleaned(Episodes))
}

func TestParseOptionsEmpty(t *testing.T) {
	opts, err := ParseOptions([]byte("  \n"))
	require.NoError(t, err)
	assert.Nil(t, opts)
}

func TestParseOptionsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scalar list", "fields:\n  meta: title\n"},
		{"unknown key", "field:\n  meta: [title]\n"},
		{"unknown sub key", "fields:\n  channel: [title]\n"},
		{"not a mapping", "- title\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOptions)
		})
	}
}
