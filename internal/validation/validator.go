package validation

import (
	"math"
	"regexp"
	"strings"
	"time"

	"fleet-workhours/internal/config"
)

var (
	platePattern  = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{0,14}$`)
	spacesPattern = regexp.MustCompile(`\s+`)
)

// timeNow is replaced in tests
var timeNow = time.Now

const (
	maxDescriptionLength = 500
	maxReasonLength      = 255
	defaultMaxHours      = 10000
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed length against max
func (v *Validator) IsValidStringLength(s string, max int) bool {
	return len(strings.TrimSpace(s)) <= max
}

// NormalisePlate upper-cases a plate and collapses inner whitespace
func (v *Validator) NormalisePlate(plate string) string {
	return spacesPattern.ReplaceAllString(strings.ToUpper(strings.TrimSpace(plate)), " ")
}

// IsValidPlate checks a normalised plate: letters, digits, spaces and hyphens
func (v *Validator) IsValidPlate(plate string) bool {
	return platePattern.MatchString(plate)
}

// IsValidEstimate checks that hours is finite, positive and within the
// configured maximum
func (v *Validator) IsValidEstimate(hours float64) bool {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return false
	}
	return hours > 0 && hours <= v.maxEstimateHours()
}

// IsValidID checks if an ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidTimeRange checks that end, when set, is not before start
func (v *Validator) IsValidTimeRange(start time.Time, end *time.Time) bool {
	if end == nil {
		return true
	}
	return !end.Before(start)
}

// IsReasonableDate allows dates from ten years ago to one year ahead
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := timeNow()
	return t.After(now.AddDate(-10, 0, 0)) && t.Before(now.AddDate(1, 0, 0))
}

// MaxEstimateHours returns the largest accepted estimate
func (v *Validator) MaxEstimateHours() float64 {
	return v.maxEstimateHours()
}

func (v *Validator) maxEstimateHours() float64 {
	if v.config != nil && v.config.Estimates.MaxHours > 0 {
		return v.config.Estimates.MaxHours
	}
	return defaultMaxHours
}
