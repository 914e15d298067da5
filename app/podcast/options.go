package podcast

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Kind selects the record kind a field list applies to.
type Kind int

const (
	// Meta is the channel-level record.
	Meta Kind = iota
	// Episodes is the per-item record.
	Episodes
)

func (k Kind) String() string {
	if k == Episodes {
		return "episodes"
	}
	return "meta"
}

// DefaultSentinel in a fields list expands to the default list plus the caller's extra fields.
const DefaultSentinel = "default"

var (
	defaultMetaFields = []string{
		"title", "author", "blocked", "categories", "complete", "description",
		"docs", "editor", "explicit", "funding", "generator", "guid", "imageURL",
		"keywords", "language", "lastBuildDate", "link", "locked", "pubDate",
		"owner", "subtitle", "summary", "type", "webMaster",
	}
	defaultEpisodeFields = []string{
		"title", "author", "blocked", "chapters", "description", "duration",
		"enclosure", "explicit", "funding", "guid", "imageURL", "keywords",
		"language", "link", "order", "pubDate", "subtitle", "summary", "transcript",
	}
	defaultUncleanedMeta     = []string{"funding", "guid"}
	defaultUncleanedEpisodes = []string{"funding", "guid", "transcript"}
)

// FieldSet holds optional per-kind field lists. A nil list means "not given".
type FieldSet struct {
	Meta     []string `json:"meta,omitempty" yaml:"meta,omitempty" validate:"omitempty,dive,fieldname"`
	Episodes []string `json:"episodes,omitempty" yaml:"episodes,omitempty" validate:"omitempty,dive,fieldname"`
}

// Options is the caller-supplied partial configuration.
type Options struct {
	Fields    *FieldSet `json:"fields,omitempty" yaml:"fields,omitempty"`
	Required  *FieldSet `json:"required,omitempty" yaml:"required,omitempty"`
	Uncleaned *FieldSet `json:"uncleaned,omitempty" yaml:"uncleaned,omitempty"`
}

// Config is a fully resolved, read-only parse configuration. Build a new one
// per call; accessors return copies.
type Config struct {
	fields    [2][]string
	required  [2][]string
	uncleaned [2][]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("fieldname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name != "" && !strings.ContainsFunc(name, unicode.IsSpace)
	})
	return v
}

// DefaultConfig returns a fresh copy of the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		fields:    [2][]string{slices.Clone(defaultMetaFields), slices.Clone(defaultEpisodeFields)},
		required:  [2][]string{{}, {}},
		uncleaned: [2][]string{slices.Clone(defaultUncleanedMeta), slices.Clone(defaultUncleanedEpisodes)},
	}
}

// BuildConfig resolves opts over the defaults. A nil opts yields DefaultConfig.
// A "default" entry in a fields list is replaced by the union of the default
// list and the given list, in order and without duplicates.
func BuildConfig(opts *Options) (*Config, error) {
	cfg := DefaultConfig()
	if opts == nil {
		return cfg, nil
	}

	if err := validate.Struct(opts); err != nil {
		return nil, &OptionsError{Reason: "blank or malformed field name", Err: err}
	}

	override(&cfg.fields, opts.Fields)
	override(&cfg.required, opts.Required)
	override(&cfg.uncleaned, opts.Uncleaned)

	defaults := [2][]string{defaultMetaFields, defaultEpisodeFields}
	for k := range cfg.fields {
		if slices.Contains(cfg.fields[k], DefaultSentinel) {
			cfg.fields[k] = mergeDedupe(defaults[k], cfg.fields[k])
		}
	}

	return cfg, nil
}

// ParseOptions decodes a YAML or JSON options document. Unknown keys and
// wrongly shaped values are rejected.
func ParseOptions(data []byte) (*Options, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var opts Options
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return nil, &OptionsError{Reason: "failed to decode options", Err: err}
	}
	return &opts, nil
}

// Fields returns a copy of the ordered field list extracted for records of kind k.
func (c *Config) Fields(k Kind) []string { return slices.Clone(c.fields[k]) }

// Required returns a copy of the field names that must be present in records of kind k.
func (c *Config) Required(k Kind) []string { return slices.Clone(c.required[k]) }

// Uncleaned returns a copy of the field names exempt from cleaning for records of kind k.
func (c *Config) Uncleaned(k Kind) []string { return slices.Clone(c.uncleaned[k]) }

// IsUncleaned reports whether field is exempt from cleaning for records of kind k.
func (c *Config) IsUncleaned(k Kind, field string) bool {
	return slices.Contains(c.uncleaned[k], field)
}

func override(dst *[2][]string, src *FieldSet) {
	if src == nil {
		return
	}
	if src.Meta != nil {
		dst[Meta] = slices.Clone(src.Meta)
	}
	if src.Episodes != nil {
		dst[Episodes] = slices.Clone(src.Episodes)
	}
}

func mergeDedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, f := range list {
			if f == DefaultSentinel || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
