package config

// Config holds runtime settings for the Melodica CLI.
type Config struct {
	// DatabasePath is the SQLite file holding accounts and the session.
	DatabasePath string
	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string
	// LogPretty switches log output from JSON to a human-friendly console form.
	LogPretty bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "melodica.db"
	c.LogLevel = "info"
	c.LogPretty = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
