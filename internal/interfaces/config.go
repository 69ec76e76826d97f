package interfaces

// Config represents the tool configuration resolved from defaults, the
// config file, environment variables, and flags.
type Config struct {
	InstallDir string `toml:"install_dir"`
	ConfigFile string `toml:"config_file"`
	IndexURL   string `toml:"index_url"`
	Xms        string `toml:"xms"`
	Xmx        string `toml:"xmx"`
}

// ConfigManager handles configuration loading and resolution.
type ConfigManager interface {
	// Load loads configuration from the specified path. An empty path means
	// the default location; a missing file falls back to defaults.
	Load(path string) (*Config, error)

	// SetFlag records a flag value for precedence resolution.
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > config > defaults).
	Resolve() (*Config, error)

	// Validate validates the configuration values.
	Validate(config *Config) error
}
