package maze

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generator failures.
type ErrorKind string

const (
	KindInvalidArgument  ErrorKind = "INVALID_ARGUMENT"
	KindGenerationFailed ErrorKind = "GENERATION_FAILED"
)

// Error is returned by every fallible operation in this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrGenerationFailed = &Error{Kind: KindGenerationFailed, Message: "generation failed"}
)

// KindOf returns the kind of err, or "" if err did not come from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func invalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// faultError is an assumption violation inside one attempt. It never escapes
// Generate; the attempt is discarded and generation restarts.
type faultError struct {
	pass Pass
	msg  string
}

func (e faultError) Error() string {
	return fmt.Sprintf("%s: %s", e.pass, e.msg)
}

func fault(p Pass, format string, args ...any) error {
	return faultError{pass: p, msg: fmt.Sprintf(format, args...)}
}
