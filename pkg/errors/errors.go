package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrDuplicateID
	ErrNoMatchingSpecialist
	ErrSlotUnavailable
	ErrInvalidState
	ErrInternal
)

// Error constructors
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Context: map[string]interface{}{"id": id},
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

func DuplicateID(resource, id string) *AppError {
	return &AppError{
		Code:    ErrDuplicateID,
		Message: fmt.Sprintf("%s with this id already registered", resource),
		Context: map[string]interface{}{"id": id},
	}
}

func NoMatchingSpecialist(specialization string) *AppError {
	return &AppError{
		Code:    ErrNoMatchingSpecialist,
		Message: fmt.Sprintf("no doctor with specialization %q", specialization),
		Context: map[string]interface{}{"specialization": specialization},
	}
}

// SlotUnavailable reports that no matching doctor holds the requested slot.
// openSlots may carry the remaining open slots of a specific doctor so the
// caller can render alternatives; it is nil for booking failures.
func SlotUnavailable(specialization, date, timeOfDay string, openSlots interface{}) *AppError {
	ctx := map[string]interface{}{
		"date": date,
		"time": timeOfDay,
	}
	if specialization != "" {
		ctx["specialization"] = specialization
	}
	if openSlots != nil {
		ctx["open_slots"] = openSlots
	}
	return &AppError{
		Code:    ErrSlotUnavailable,
		Message: fmt.Sprintf("no open slot at %s %s", date, timeOfDay),
		Context: ctx,
	}
}

func InvalidState(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidState,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal for non-AppErrors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
