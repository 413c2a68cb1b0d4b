package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fleet-workhours/internal/api"
	"fleet-workhours/internal/config"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"

	"github.com/dustin/go-humanize"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// APIFactory opens the business API for a configuration. The returned close
// function releases the underlying store.
type APIFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// App represents the CLI application state shared by command handlers
type App struct {
	calculator api.CalculatorAPI
	config     *config.Config
	out        io.Writer
	loc        *time.Location

	factory     APIFactory
	businessAPI api.BusinessAPI
	closeFn     func() error
}

// NewApp creates a new CLI application. The business API is opened on first
// use so calculator commands never touch the store.
func NewApp(cfg *config.Config, factory APIFactory, out io.Writer) (*App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	calc, err := cfg.Calculator()
	if err != nil {
		return nil, err
	}

	return &App{
		calculator: api.NewCalculatorAPI(calc, api.WithMaxHours(cfg.Estimates.MaxHours)),
		config:     cfg,
		out:        out,
		loc:        time.Local,
		factory:    factory,
	}, nil
}

// NewAppWithAPI creates an App around an already open business API
func NewAppWithAPI(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		calculator:  businessAPI,
		config:      cfg,
		out:         out,
		loc:         time.Local,
		businessAPI: businessAPI,
	}
}

// business returns the business API, opening it if needed
func (a *App) business() (api.BusinessAPI, error) {
	if a.businessAPI != nil {
		return a.businessAPI, nil
	}
	if a.factory == nil {
		return nil, errors.NewConfigurationError("database", "no repository configured")
	}

	businessAPI, closeFn, err := a.factory(a.config)
	if err != nil {
		return nil, err
	}
	a.businessAPI = businessAPI
	a.closeFn = closeFn
	return businessAPI, nil
}

// Close releases the business API if it was opened
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	err := a.closeFn()
	a.closeFn = nil
	a.businessAPI = nil
	return err
}

// parseTime reads a timestamp argument; "now" means the current time
func (a *App) parseTime(value string) (time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(value), "now") {
		return timeNow().In(a.loc).Truncate(time.Minute), nil
	}
	return validation.ParseTimestamp(value, a.loc)
}

// parseOptionalTime is parseTime that maps an empty value to the zero time,
// which the services read as now
func (a *App) parseOptionalTime(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return a.parseTime(value)
}

func (a *App) formatTime(t time.Time) string {
	return t.Format(a.config.Display.TimeFormat)
}

// formatTimePtr formats t or returns fallback when it is nil
func (a *App) formatTimePtr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return a.formatTime(*t)
}

// relative describes t against now, e.g. "3 hours from now"
func (a *App) relative(t time.Time) string {
	return humanize.RelTime(t, timeNow(), "ago", "from now")
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
