package wad

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies archive failures so callers can react without matching
// message text.
type Kind int

const (
	FileNotFound Kind = iota
	InvalidHeader
	InvalidDirectory
	LumpNotFound
	BadLumpInterpret
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "FileNotFound"
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidDirectory:
		return "InvalidDirectory"
	case LumpNotFound:
		return "LumpNotFound"
	case BadLumpInterpret:
		return "BadLumpInterpret"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error carries a Kind along the usual error chain.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[wad] %s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("[wad] %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause implements the pkg/errors causer interface.
func (e *Error) Cause() error { return e.cause }

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrapError(err error, kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, a...), cause: err}
}

// KindOf reports the archive error kind of err, walking the cause chain.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		err = errors.Unwrap(err)
	}
	return 0, false
}
