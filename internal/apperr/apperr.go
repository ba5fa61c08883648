// Package apperr defines the error kinds a command can end with.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage marks bad or missing arguments, unknown variants and voices.
	ErrUsage = errors.New("usage error")
	// ErrResourceMissing marks input files that are absent or unreadable.
	ErrResourceMissing = errors.New("resource missing")
)

// Usage returns an error that matches ErrUsage.
func Usage(format string, a ...any) error {
	return &kindError{kind: ErrUsage, msg: fmt.Sprintf(format, a...)}
}

// Missing returns an error that matches ErrResourceMissing.
func Missing(format string, a ...any) error {
	return &kindError{kind: ErrResourceMissing, msg: fmt.Sprintf(format, a...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

// ProcessError is an external tool failure with the operation it served.
type ProcessError struct {
	Tool string
	Op   string
	Err  error
}

func (e *ProcessError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed (%s)", e.Op, e.Tool)
	}
	return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Tool, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
