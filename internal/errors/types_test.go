package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"Configuration", ErrorTypeConfiguration, "configuration"},
		{"Conflict", ErrorTypeConflict, "conflict"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeConfiguration,
				Message: "window open must be before close",
			},
			expected: "configuration: window open must be before close",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeDatabase,
				Message: "connection failed",
				Cause:   errors.New("timeout"),
			},
			expected: "database: connection failed (caused by: timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("disk full")
	err := NewDatabaseError("insert pause", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should reach the cause")
	}
	if !errors.Is(err, &AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}) {
		t.Errorf("errors.Is should match on type and code")
	}
	if errors.Is(err, &AppError{Type: ErrorTypeDatabase, Code: "OTHER"}) {
		t.Errorf("errors.Is should not match a different code")
	}
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation}

	if _, ok := err.GetContext("missing"); ok {
		t.Errorf("GetContext should report missing keys on a nil map")
	}

	err.WithContext("field", "estimated_hours").WithContext("value", 12.5)

	field, ok := err.GetContext("field")
	if !ok || field != "estimated_hours" {
		t.Errorf("GetContext(field) = %v, %v", field, ok)
	}
	value, ok := err.GetContext("value")
	if !ok || value != 12.5 {
		t.Errorf("GetContext(value) = %v, %v", value, ok)
	}
}
