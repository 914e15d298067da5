package cfg

type Cfg struct {
	// Storage and subscriptions
	DBPath   string
	FeedsDir string

	// HTTP service
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Parse result cache
	RedisAddr     string
	ParseCacheTTL int

	// Fetching
	UserAgent    string
	FetchTimeout int
	FetchRetries int

	// One-shot mode
	URL         string
	File        string
	OptionsFile string
	Format      string

	// Logging
	LogLevel  string
	LogPretty bool

	Timezone string
	Version  string
}

// OneShot reports whether a single feed should be parsed and printed instead of running the service.
func (c *Cfg) OneShot() bool {
	return c.URL != "" || c.File != ""
}
