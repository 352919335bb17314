package models

import "fmt"

// ValidationError signals malformed input (bad swipe kind, empty message, ...).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals an unknown chat/message/match/notification id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ForbiddenError signals an action on a resource the caller does not own or
// participate in.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

// ConflictError signals a lost creation race on a unique-constrained item.
// Match creation treats it as success; it is never surfaced to clients.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists for %s", e.Resource, e.Key)
}

// DeliveryError records a failed push or broadcast delivery. It is always
// caught and logged locally, never propagated to the triggering request.
type DeliveryError struct {
	Endpoint string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Endpoint, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
