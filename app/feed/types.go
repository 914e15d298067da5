package feed

import "github.com/lysyi3m/pod-comb/app/podcast"

// Subscription configuration types

type Config struct {
	Name     string           // Derived from filename (without .yml extension)
	URL      string           `yaml:"url"`
	Settings ConfigSettings   `yaml:"settings"`
	Options  *podcast.Options `yaml:"options"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds
}
