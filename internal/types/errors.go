package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

// NoSeat marks a HandError that is not tied to a seat
const NoSeat = -1

const (
	// Hand integrity errors
	ErrStructuralViolation ErrorCode = "STRUCTURAL_VIOLATION"
	ErrBlindSeatAnomaly    ErrorCode = "BLIND_SEAT_ANOMALY"
	ErrInvalidHand         ErrorCode = "INVALID_HAND"

	// Storage errors
	ErrHandNotFound  ErrorCode = "HAND_NOT_FOUND"
	ErrDuplicateHand ErrorCode = "DUPLICATE_HAND"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrIndexError    ErrorCode = "INDEX_ERROR"

	// System errors
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrInternalError   ErrorCode = "INTERNAL_ERROR"
)

// HandError represents an error raised while handling a single hand
type HandError struct {
	Code    ErrorCode
	Message string
	HandID  int64
	Seat    int   // NoSeat unless the error concerns a seat
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *HandError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.HandID != 0 {
		msg = fmt.Sprintf("%s (hand %d", msg, e.HandID)
		if e.Seat != NoSeat {
			msg = fmt.Sprintf("%s, seat %d", msg, e.Seat)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *HandError) Unwrap() error {
	return e.Err
}

// Is matches another HandError by code, so sentinel comparisons work with errors.Is
func (e *HandError) Is(target error) bool {
	t, ok := target.(*HandError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewHandError creates a new HandError
func NewHandError(code ErrorCode, message string) *HandError {
	return &HandError{
		Code:    code,
		Message: message,
		Seat:    NoSeat,
	}
}

// WrapError wraps an existing error in a HandError
func WrapError(code ErrorCode, message string, err error) *HandError {
	return &HandError{
		Code:    code,
		Message: message,
		Seat:    NoSeat,
		Err:     err,
	}
}

// ForHand returns a copy of e bound to a hand identifier
func (e *HandError) ForHand(handID int64) *HandError {
	c := *e
	c.HandID = handID
	return &c
}

// NewStructuralViolation reports hole cards dealt to an unoccupied seat
func NewStructuralViolation(handID int64, seat int) *HandError {
	return &HandError{
		Code:    ErrStructuralViolation,
		Message: "hole cards recorded for an unoccupied seat",
		HandID:  handID,
		Seat:    seat,
	}
}

// IsHandError checks if an error is a HandError and has a specific code
func IsHandError(err error, code ErrorCode) bool {
	var handErr *HandError
	if !As(err, &handErr) {
		return false
	}
	return handErr.Code == code
}

// As finds the first HandError in err's chain
func As(err error, target **HandError) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}
