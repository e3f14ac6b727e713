package core

import "github.com/pkg/errors"

// FieldError names a single invalid field and the message reported for it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a request rejected by validation or by a persistence
// constraint (duplicate, bad reference). It renders as a 400; Fields, when
// set, becomes the per-field error map of the response body.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// shutdown signals that the application is unhealthy and should stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err, at any depth, is a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
