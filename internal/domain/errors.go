// Domain errors represent business-level failures, not HTTP errors.
// Adapters map them to transport codes at the boundary.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input failed a business rule check.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required upstream is unreachable or
	// returned an unusable response.
	ErrUnavailable = errors.New("unavailable")

	// ErrRateLimited indicates an upstream throttled us (HTTP 429).
	// Distinguished from ErrUnavailable so quote retrieval can tag the
	// fallback tier precisely.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotConfigured indicates a required configuration value is
	// missing. Surfaced distinctly so operators can tell deployment
	// misconfiguration apart from runtime failure.
	ErrNotConfigured = errors.New("not configured")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// RateLimitedError provides context for upstream throttling.
type RateLimitedError struct {
	Service string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("service %q rate limited the request", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// NewRateLimitedError creates a rate limited error with context.
func NewRateLimitedError(service string) error {
	return &RateLimitedError{Service: service}
}

// NotConfiguredError provides context for missing configuration.
type NotConfiguredError struct {
	Component string
	Reason    string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s is not configured: %s", e.Component, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotConfiguredError) Unwrap() error {
	return ErrNotConfigured
}

// NewNotConfiguredError creates a not configured error with context.
func NewNotConfiguredError(component, reason string) error {
	return &NotConfiguredError{Component: component, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsRateLimited checks if an error indicates upstream throttling.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotConfigured checks if an error indicates missing configuration.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
