package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeLLM represents OpenRouter/LLM-related errors
	ErrorTypeLLM ErrorType = "llm"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// LLM Errors

// ErrEmptyCompletion is returned when the model responds with no choices
var ErrEmptyCompletion = NewBaseError(ErrorTypeLLM, "no choices in completion response", nil)

// ErrLLMRequestFailed is returned when an LLM request fails after retries
type ErrLLMRequestFailed struct {
	*BaseError
	Model    string
	Attempts int
}

func NewLLMRequestFailed(model string, attempts int, err error) *ErrLLMRequestFailed {
	return &ErrLLMRequestFailed{
		BaseError: NewBaseError(ErrorTypeLLM, fmt.Sprintf("LLM request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	// Check wrapped errors
	if baseErr, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(baseErr.Unwrap(), errType)
	}
	return false
}
