package api

import (
	"context"
	"fmt"
	"math"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workcalendar"
	"fleet-workhours/internal/workhours"
)

// ElapsedResult is the working time between two instants
type ElapsedResult struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Minutes  int64     `json:"minutes"`
	Hours    float64   `json:"hours"`
	Duration string    `json:"duration"`
}

// CompletionResult is when a job of Hours started at Start finishes
type CompletionResult struct {
	Start      time.Time `json:"start"`
	Hours      float64   `json:"hours"`
	Minutes    int64     `json:"minutes"`
	Completion time.Time `json:"completion"`
}

// WindowInfo describes the working time the calculators use
type WindowInfo struct {
	Open        string   `json:"open"`
	Close       string   `json:"close"`
	LengthHours float64  `json:"length_hours"`
	Workdays    []string `json:"workdays,omitempty"`
	Holidays    []string `json:"holidays,omitempty"`
}

// CalculatorAPI exposes the working-hours arithmetic directly
type CalculatorAPI interface {
	// Elapsed returns the working time in [start, end]; zero when end is not after start
	Elapsed(ctx context.Context, start, end time.Time) (*ElapsedResult, error)

	// Completion returns when hours of work started at start finish
	Completion(ctx context.Context, start time.Time, hours float64) (*CompletionResult, error)

	// Window describes the working window and, when configured, the calendar
	Window(ctx context.Context) *WindowInfo
}

type calculatorAPI struct {
	calc     workhours.Calculator
	window   workhours.Window
	maxHours float64
}

// CalculatorOption configures a CalculatorAPI
type CalculatorOption func(*calculatorAPI)

// WithMaxHours bounds the hours Completion accepts. Non-positive values keep
// the validator's default maximum.
func WithMaxHours(hours float64) CalculatorOption {
	return func(c *calculatorAPI) {
		if hours > 0 {
			c.maxHours = hours
		}
	}
}

// NewCalculatorAPI creates a CalculatorAPI over calc. calc is normally a
// workhours.Window or a *workcalendar.Calendar.
func NewCalculatorAPI(calc workhours.Calculator, opts ...CalculatorOption) CalculatorAPI {
	c := &calculatorAPI{
		calc:     calc,
		window:   workhours.DefaultWindow(),
		maxHours: validation.NewValidator().MaxEstimateHours(),
	}
	for _, opt := range opts {
		opt(c)
	}
	switch v := calc.(type) {
	case workhours.Window:
		c.window = v
	case *workcalendar.Calendar:
		c.window = v.Window()
	}
	return c
}

func (c *calculatorAPI) Elapsed(ctx context.Context, start, end time.Time) (*ElapsedResult, error) {
	if start.IsZero() {
		return nil, errors.NewInvalidInputError("start", start, "is required")
	}
	if end.IsZero() {
		return nil, errors.NewInvalidInputError("end", end, "is required")
	}

	minutes := c.calc.ElapsedMinutes(start, end)
	return &ElapsedResult{
		Start:    start,
		End:      end,
		Minutes:  minutes,
		Hours:    workhours.HoursFromMinutes(minutes),
		Duration: domain.FormatMinutes(minutes),
	}, nil
}

func (c *calculatorAPI) Completion(ctx context.Context, start time.Time, hours float64) (*CompletionResult, error) {
	if start.IsZero() {
		return nil, errors.NewInvalidInputError("start", start, "is required")
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, errors.NewInvalidInputError("hours", hours, "must be a finite number")
	}
	if hours > c.maxHours {
		return nil, errors.NewInvalidInputError("hours", hours, fmt.Sprintf("must be at most %g", c.maxHours))
	}

	minutes := workhours.MinutesFromHours(hours)
	if minutes < 0 {
		minutes = 0
	}
	return &CompletionResult{
		Start:      start,
		Hours:      hours,
		Minutes:    minutes,
		Completion: c.calc.CompletionMinutes(start, minutes),
	}, nil
}

func (c *calculatorAPI) Window(ctx context.Context) *WindowInfo {
	info := &WindowInfo{
		Open:        c.window.Open().String(),
		Close:       c.window.Close().String(),
		LengthHours: c.window.LengthHours(),
	}

	if cal, ok := c.calc.(*workcalendar.Calendar); ok {
		for _, d := range cal.Workdays() {
			info.Workdays = append(info.Workdays, d.String())
		}
		for _, h := range cal.Holidays() {
			info.Holidays = append(info.Holidays, h.Format("2006-01-02"))
		}
	}
	return info
}
