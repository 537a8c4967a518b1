// Package apperr classifies failures so callers and the UI can react to
// what went wrong instead of string-matching messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure category carried by Error.
type Kind string

const (
	// IO covers filesystem failures: create, copy, remove, permissions.
	IO Kind = "IO"
	// Network covers HTTP transport and non-success status codes.
	Network Kind = "NETWORK"
	// Archive covers malformed or unreadable update packages.
	Archive Kind = "ARCHIVE"
	// ExternalTool covers failures launching or talking to engine binaries.
	ExternalTool Kind = "EXTERNAL-TOOL"
	// Logic covers invalid input and broken preconditions.
	Logic Kind = "LOGIC"
)

// Error pairs a Kind with a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with a fixed message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. A nil cause yields nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind of err, or "" when err carries no classification.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
