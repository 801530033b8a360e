// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrParse indicates malformed user input, such as amount or date text.
	ErrParse = errors.New("malformed input")
	// ErrValidation indicates input that parsed but violates an invariant,
	// such as a non-positive amount or an empty required field.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateName indicates a category name collision.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrNotFound indicates the operation targeted a missing record.
	ErrNotFound = errors.New("not found")
	// ErrStorage indicates an underlying persistence failure.
	ErrStorage = errors.New("storage failure")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
