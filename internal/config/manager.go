package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"mcvelo-cli/internal/interfaces"
	"mcvelo-cli/internal/versions"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

var _ interfaces.ConfigManager = (*Manager)(nil)

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("MCVELO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("install_dir", "velocity")
	v.SetDefault("config_file", filepath.Join("velocity", "velocity.toml"))
	v.SetDefault("index_url", versions.DefaultIndexURL)
	v.SetDefault("xms", "256M")
	v.SetDefault("xmx", "512M")
}

// Load loads configuration from the specified path. An empty path means the
// default location; a missing file falls back to defaults.
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".config", "mcvelo", "config.toml")
	}

	path = expandPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()
	m.applyFlagOverrides(config)
	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if val, exists := m.flags["install_dir"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.InstallDir = expandPath(str)
		}
	}

	if val, exists := m.flags["config_file"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.ConfigFile = expandPath(str)
		}
	}

	if val, exists := m.flags["index_url"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.IndexURL = str
		}
	}

	if val, exists := m.flags["xms"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.Xms = str
		}
	}

	if val, exists := m.flags["xmx"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.Xmx = str
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.InstallDir == "" {
		return fmt.Errorf("install_dir cannot be empty")
	}

	if config.ConfigFile == "" {
		return fmt.Errorf("config_file cannot be empty")
	}

	if !strings.HasPrefix(config.IndexURL, "http://") && !strings.HasPrefix(config.IndexURL, "https://") {
		return fmt.Errorf("invalid index_url: %s (must be an http or https URL)", config.IndexURL)
	}

	if err := validateHeapSize("xms", config.Xms); err != nil {
		return err
	}
	if err := validateHeapSize("xmx", config.Xmx); err != nil {
		return err
	}

	return nil
}

// validateHeapSize checks a JVM heap size like 256M, 1G, or 1024K.
func validateHeapSize(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}
	digits := value[:len(value)-1]
	suffix := value[len(value)-1]
	switch suffix {
	case 'k', 'K', 'm', 'M', 'g', 'G':
	default:
		return fmt.Errorf("invalid %s: %s (must end with K, M, or G)", key, value)
	}
	if digits == "" {
		return fmt.Errorf("invalid %s: %s (missing size)", key, value)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid %s: %s (size must be numeric)", key, value)
		}
	}
	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		InstallDir: expandPath(m.v.GetString("install_dir")),
		ConfigFile: expandPath(m.v.GetString("config_file")),
		IndexURL:   m.v.GetString("index_url"),
		Xms:        m.v.GetString("xms"),
		Xmx:        m.v.GetString("xmx"),
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
