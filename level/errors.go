package level

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies level loading and BSP access failures.
type Kind int

const (
	// InvalidData covers malformed records, mis-sized lumps and
	// out-of-range arena indices.
	InvalidData Kind = iota
	// InvalidNodeAccess is a contract violation: asking a tagged BSP
	// child for the wrong variant.
	InvalidNodeAccess
)

func (k Kind) String() string {
	switch k {
	case InvalidData:
		return "InvalidData"
	case InvalidNodeAccess:
		return "InvalidNodeAccess"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[level] %s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("[level] %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Cause() error { return e.cause }

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrapError(err error, kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, a...), cause: err}
}

// KindOf reports the level error kind of err, walking the cause chain.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		err = errors.Unwrap(err)
	}
	return 0, false
}
