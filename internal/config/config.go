package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fleet-workhours/internal/workcalendar"
	"fleet-workhours/internal/workhours"
)

// Config holds all configuration options for the workshop hours application
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	Database    DatabaseConfig    `yaml:"database"`
	Estimates   EstimatesConfig   `yaml:"estimates"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
	Server      ServerConfig      `yaml:"server"`
}

// WindowConfig is the daily working window, "HH:MM" on a 24-hour clock
type WindowConfig struct {
	Open  string `yaml:"open" env:"WH_WINDOW_OPEN"`
	Close string `yaml:"close" env:"WH_WINDOW_CLOSE"`
}

// CalendarConfig lists non-working dates. Both lists empty means every
// calendar day has a working window.
type CalendarConfig struct {
	Workdays []string `yaml:"workdays" env:"WH_WORKDAYS"`
	Holidays []string `yaml:"holidays" env:"WH_HOLIDAYS"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `yaml:"driver" env:"WH_DB_DRIVER"`
	DSN            string        `yaml:"dsn" env:"WH_DB_DSN"`
	Dir            string        `yaml:"dir" env:"WH_DB_DIR"`
	Filename       string        `yaml:"filename" env:"WH_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"WH_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"WH_DB_DIR_PERMISSIONS"`
}

// EstimatesConfig bounds the work-order estimates accepted
type EstimatesConfig struct {
	MaxHours float64 `yaml:"max_hours" env:"WH_MAX_ESTIMATE_HOURS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `yaml:"time_format" env:"WH_TIME_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"WH_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"WH_APP_VERBOSE"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"WH_SERVER_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"WH_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WH_SERVER_WRITE_TIMEOUT"`
}

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewConfig creates a new configuration with the workshop defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Window: WindowConfig{
			Open:  workhours.CanonicalOpen.String(),
			Close: workhours.CanonicalClose.String(),
		},
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            filepath.Join(homeDir, ".wh"),
			Filename:       "wh.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Estimates: EstimatesConfig{
			MaxHours: 10000,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the sqlite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// DataSourceName returns the DSN handed to the database driver. For sqlite
// without an explicit DSN this is the database file path.
func (c *Config) DataSourceName() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return c.GetDatabasePath()
}

// WorkingWindow builds the configured daily window.
func (c *Config) WorkingWindow() (workhours.Window, error) {
	return workhours.ParseWindow(c.Window.Open, c.Window.Close)
}

// CalendarEnabled reports whether any non-working dates are configured.
func (c *Config) CalendarEnabled() bool {
	return len(c.Calendar.Workdays) > 0 || len(c.Calendar.Holidays) > 0
}

// Calculator returns the working-time calculator for this configuration: the
// plain window, or a calendar over it when non-working dates are configured.
func (c *Config) Calculator() (workhours.Calculator, error) {
	window, err := c.WorkingWindow()
	if err != nil {
		return nil, err
	}
	if !c.CalendarEnabled() {
		return window, nil
	}

	var opts []workcalendar.Option
	if len(c.Calendar.Workdays) > 0 {
		days, err := workcalendar.ParseWeekdays(c.Calendar.Workdays)
		if err != nil {
			return nil, err
		}
		opts = append(opts, workcalendar.WithWorkdays(days...))
	}
	holidays, err := workcalendar.ParseHolidays(c.Calendar.Holidays)
	if err != nil {
		return nil, err
	}
	opts = append(opts, workcalendar.WithHolidays(holidays...))

	return workcalendar.New(window, opts...)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Window configuration
	if open := os.Getenv("WH_WINDOW_OPEN"); open != "" {
		c.Window.Open = open
	}
	if closeAt := os.Getenv("WH_WINDOW_CLOSE"); closeAt != "" {
		c.Window.Close = closeAt
	}

	// Calendar configuration
	if days := os.Getenv("WH_WORKDAYS"); days != "" {
		c.Calendar.Workdays = splitList(days)
	}
	if holidays := os.Getenv("WH_HOLIDAYS"); holidays != "" {
		c.Calendar.Holidays = splitList(holidays)
	}

	// Database configuration
	if driver := os.Getenv("WH_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("WH_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if dir := os.Getenv("WH_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WH_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WH_DB_QUERY_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "database.query_timeout", Message: fmt.Sprintf("invalid duration %q", timeout)}
		}
		c.Database.QueryTimeout = d
	}
	if perms := os.Getenv("WH_DB_DIR_PERMISSIONS"); perms != "" {
		p, err := strconv.ParseUint(perms, 8, 32)
		if err != nil {
			return &ConfigError{Field: "database.dir_permissions", Message: fmt.Sprintf("invalid octal mode %q", perms)}
		}
		c.Database.DirPermissions = uint32(p)
	}

	// Estimates configuration
	if maxHours := os.Getenv("WH_MAX_ESTIMATE_HOURS"); maxHours != "" {
		h, err := strconv.ParseFloat(maxHours, 64)
		if err != nil {
			return &ConfigError{Field: "estimates.max_hours", Message: fmt.Sprintf("invalid number %q", maxHours)}
		}
		c.Estimates.MaxHours = h
	}

	// Display configuration
	if format := os.Getenv("WH_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("WH_APP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "application.timeout", Message: fmt.Sprintf("invalid duration %q", timeout)}
		}
		c.Application.Timeout = d
	}
	if verbose := os.Getenv("WH_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	// Server configuration
	if addr := os.Getenv("WH_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// The working window is the one setting the calculators cannot run without;
	// its fault is returned as is so callers see the configuration error type.
	if _, err := c.Calculator(); err != nil {
		return err
	}

	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" && (c.Database.Dir == "" || c.Database.Filename == "") {
			return &ConfigError{Field: "database.dir", Message: "sqlite needs a dsn or a directory and filename"}
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "postgres requires a dsn"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unsupported driver %q", c.Database.Driver)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate estimates
	if c.Estimates.MaxHours <= 0 {
		return &ConfigError{Field: "estimates.max_hours", Message: "max estimate must be positive"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
