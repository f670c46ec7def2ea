package engine

import (
	"errors"
	"fmt"
)

// RejectionError reports a mutation that was refused. The engine state is
// unchanged and no event was emitted.
type RejectionError struct {
	// Code identifies the rejection category.
	Code RejectionCode

	// Message is a human-readable description.
	Message string

	// Subject is the id of the building, tech, upgrade or resource involved.
	Subject string
}

// RejectionCode categorizes rejected mutations.
type RejectionCode string

const (
	// ErrCodeInsufficient indicates the ledger cannot cover a cost.
	ErrCodeInsufficient RejectionCode = "INSUFFICIENT_RESOURCES"

	// ErrCodePrerequisites indicates a tech whose prerequisites are not researched.
	ErrCodePrerequisites RejectionCode = "PREREQUISITES_UNMET"

	// ErrCodeAlreadyResearched indicates a tech that is already unlocked.
	ErrCodeAlreadyResearched RejectionCode = "ALREADY_RESEARCHED"

	// ErrCodeLocked indicates a building gated behind research, or a
	// resource that cannot be gathered by hand.
	ErrCodeLocked RejectionCode = "LOCKED"

	// ErrCodeInvalidTickRate indicates a non-positive or non-finite step size.
	ErrCodeInvalidTickRate RejectionCode = "INVALID_TICK_RATE"

	// ErrCodeUnknownID indicates an identifier outside the closed enumerations.
	ErrCodeUnknownID RejectionCode = "UNKNOWN_ID"
)

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func reject(code RejectionCode, subject, format string, args ...any) *RejectionError {
	return &RejectionError{Code: code, Message: fmt.Sprintf(format, args...), Subject: subject}
}

// IsRejection returns true if err is or wraps a RejectionError.
func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}

// RejectionCodeOf returns the code of a wrapped RejectionError, or "" if
// err is not a rejection.
func RejectionCodeOf(err error) RejectionCode {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
