package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("work order", "42")

	if err.Message != "work order not found: 42" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}
	if resource, ok := err.GetContext("resource"); !ok || resource != "work order" {
		t.Errorf("NewNotFoundError should set resource context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("hours", "abc", "not a number")

	if err.Message != "invalid input for hours: not a number" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if value, ok := err.GetContext("value"); !ok || value != "abc" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("working window", "open 16:30 is not before close 07:30")

	if err.Type != ErrorTypeConfiguration {
		t.Errorf("NewConfigurationError type = %v", err.Type)
	}
	if err.Code != "CONFIGURATION_FAULT" {
		t.Errorf("NewConfigurationError code = %v", err.Code)
	}
	if err.Message != "invalid configuration for working window: open 16:30 is not before close 07:30" {
		t.Errorf("NewConfigurationError message = %v", err.Message)
	}
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("pause", "work order 7 already has an active pause")

	if err.Type != ErrorTypeConflict || err.Code != "CONFLICT" {
		t.Errorf("NewConflictError = %v / %v", err.Type, err.Code)
	}
	if reason, ok := err.GetContext("reason"); !ok || reason != "work order 7 already has an active pause" {
		t.Errorf("NewConflictError should set reason context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestAsAppError(t *testing.T) {
	appError := NewNotFoundError("pause", "3")
	wrapped := fmt.Errorf("stop pause: %w", appError)

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should unwrap to the original AppError")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewConfigurationError("window", "bad")

	if !IsErrorType(err, ErrorTypeConfiguration) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(err, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeConfiguration) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("estimate must be positive", nil), "estimate must be positive"},
		{"Not found error", NewNotFoundError("work order", "9"), "work order not found: 9"},
		{"Conflict error", NewConflictError("pause", "already active"), "pause conflict: already active"},
		{"Database error", NewDatabaseError("query", errors.New("timeout")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("query", "5s"), "The operation timed out. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewConflictError("pause", "x")) != "CONFLICT" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("pause", "1"), false},
		{"Conflict error", NewConflictError("pause", "active"), false},
		{"Database error", NewDatabaseError("query", errors.New("timeout")), true},
		{"Configuration error", NewConfigurationError("window", "bad"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
