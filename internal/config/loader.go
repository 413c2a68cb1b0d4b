package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a loader reading the file named by WH_CONFIG, or ~/.wh.yaml
func NewLoader() *Loader {
	return NewLoaderWithPath(DefaultConfigPath())
}

// NewLoaderWithPath creates a loader reading the given YAML file
func NewLoaderWithPath(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// DefaultConfigPath returns WH_CONFIG when set, otherwise ~/.wh.yaml
func DefaultConfigPath() string {
	if p := os.Getenv("WH_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wh.yaml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromFile(l.path); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromFile(l.path); err != nil {
		return nil, err
	}
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(l.config)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadFromFile overlays the YAML file at path. A missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "file", Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: "parse " + path + ": " + err.Error()}
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	WindowOpen  *string
	WindowClose *string
	Workdays    *[]string
	Holidays    *[]string

	DBDriver       *string
	DBDSN          *string
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	MaxEstimateHours *float64
	TimeFormat       *string

	Timeout *time.Duration
	Verbose *bool

	ServerAddr *string
}

// Apply copies every set override onto config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.WindowOpen != nil {
		config.Window.Open = *o.WindowOpen
	}
	if o.WindowClose != nil {
		config.Window.Close = *o.WindowClose
	}
	if o.Workdays != nil {
		config.Calendar.Workdays = *o.Workdays
	}
	if o.Holidays != nil {
		config.Calendar.Holidays = *o.Holidays
	}

	if o.DBDriver != nil {
		config.Database.Driver = *o.DBDriver
	}
	if o.DBDSN != nil {
		config.Database.DSN = *o.DBDSN
	}
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *o.DBQueryTimeout
	}

	if o.MaxEstimateHours != nil {
		config.Estimates.MaxHours = *o.MaxEstimateHours
	}
	if o.TimeFormat != nil {
		config.Display.TimeFormat = *o.TimeFormat
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}

	if o.ServerAddr != nil {
		config.Server.Addr = *o.ServerAddr
	}
}
