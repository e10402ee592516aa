package errors

import (
	"errors"
	"fmt"
)

// Error carries a machine-readable code and a message that is safe to show to
// API callers. The wrapped error holds the internal detail.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with a message only.
func New(message string) error {
	return &Error{Message: message}
}

// NewWithCode creates an error with a code and a message.
func NewWithCode(code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps err with a message. Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// WrapWithCode wraps err with a code and a message. Returns nil when err is nil.
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost *Error in the chain, or "".
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the message of the outermost *Error in the chain, or
// err.Error() for foreign errors.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HasCode reports whether any *Error in the chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}
