package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRender     Category = "render"
	CategoryLifecycle  Category = "lifecycle"
	CategoryCache      Category = "cache"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
)

// VellumError is a structured error with a stable code and category.
type VellumError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (render, lifecycle, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VellumError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VellumError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *VellumError) WithDetail(d string) *VellumError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VellumError) Wrap(err error) *VellumError {
	e.Wrapped = err
	return e
}

// New creates a VellumError from a registered error code.
func New(code string) *VellumError {
	template, ok := registry[code]
	if !ok {
		return &VellumError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VellumError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new VellumError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VellumError {
	return &VellumError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under a registered code.
func FromError(err error, code string) *VellumError {
	if err == nil {
		return nil
	}
	return New(code).Wrap(err)
}
