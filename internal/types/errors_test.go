package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewHandError() {
	err := NewHandError(ErrHandNotFound, "hand not found")

	s.Equal(ErrHandNotFound, err.Code, "Error code should match")
	s.Equal("hand not found", err.Message, "Error message should match")
	s.Equal(NoSeat, err.Seat, "Seat should default to NoSeat")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	underlying := errors.New("connection failed")

	err := WrapError(ErrDatabaseError, "database error", underlying)

	s.Equal(ErrDatabaseError, err.Code)
	s.Equal(underlying, err.Err)
	s.ErrorIs(err, underlying, "errors.Is should see the wrapped error")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *HandError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewHandError(ErrHandNotFound, "hand not found"),
			expected: "HAND_NOT_FOUND: hand not found",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "database error", errors.New("connection failed")),
			expected: "DATABASE_ERROR: database error: connection failed",
		},
		{
			name:     "Hand bound error",
			err:      NewHandError(ErrDuplicateHand, "already stored").ForHand(7),
			expected: "DUPLICATE_HAND: already stored (hand 7)",
		},
		{
			name:     "Structural violation",
			err:      NewStructuralViolation(42, 3),
			expected: "STRUCTURAL_VIOLATION: hole cards recorded for an unoccupied seat (hand 42, seat 3)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error())
		})
	}
}

func (s *ErrorTestSuite) TestIsHandError() {
	handErr := NewHandError(ErrHandNotFound, "hand not found")
	wrapped := fmt.Errorf("loading: %w", handErr)

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{name: "Matching hand error", err: handErr, code: ErrHandNotFound, expected: true},
		{name: "Wrapped hand error", err: wrapped, code: ErrHandNotFound, expected: true},
		{name: "Non-matching hand error", err: handErr, code: ErrInternalError, expected: false},
		{name: "Regular error", err: errors.New("regular error"), code: ErrHandNotFound, expected: false},
		{name: "Nil error", err: nil, code: ErrHandNotFound, expected: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsHandError(tc.err, tc.code))
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	handErr := NewStructuralViolation(1, 0)

	var target *HandError
	s.True(As(fmt.Errorf("projecting: %w", handErr), &target))
	s.Equal(handErr, target)

	s.False(As(errors.New("regular error"), &target))
	s.False(As(nil, &target))
	s.False(As(handErr, nil))
}

func (s *ErrorTestSuite) TestIsMatchesByCode() {
	err := NewStructuralViolation(9, 4)

	s.ErrorIs(err, NewHandError(ErrStructuralViolation, ""))
	s.NotErrorIs(err, NewHandError(ErrInvalidHand, ""))
}
