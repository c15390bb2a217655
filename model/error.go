package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a mode handle from an older
	// enumeration is applied after the display source re-enumerated.
	ErrStaleHandle = errors.New("mode handle is from a previous display enumeration")
	// ErrUnsupportedPlatform is returned by OS integrations on platforms
	// they are not built for.
	ErrUnsupportedPlatform = errors.New("not supported on this platform")
	// ErrDisplayNotFound is returned when no online display matches a query.
	ErrDisplayNotFound = errors.New("display not found")
	// ErrDuplicateShortcut is returned when two shortcuts share a key chord.
	ErrDuplicateShortcut = errors.New("duplicate shortcut")
)

type ExitCode int

func (e ExitCode) String() string {
	return fmt.Sprintf("Exit code %d", e)
}

func (e ExitCode) Error() string {
	return e.String()
}

const (
	Unset ExitCode = -1
)
const (
	NoError ExitCode = iota
	UnknownError
	UserCanceled
)

// ExitError carries the exit code the process should end with while letting
// deferred cleanup (terminal restore, hotkey unregistering) run first.
type ExitError struct {
	Code ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code.String(), e.Err)
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewExitError builds an ExitError.
func NewExitError(code ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCodeFromError returns the exit code carried by err, or UnknownError
// for errors that carry none.
func ExitCodeFromError(err error) (ExitCode, error) {
	if err == nil {
		return NoError, nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Err
	}
	return UnknownError, err
}
