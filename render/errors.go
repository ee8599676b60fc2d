package render

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies renderer failures.
type Kind int

const (
	// InvalidConfig is reported for unusable renderer parameters.
	InvalidConfig Kind = iota
	// FrameError is reported for buffer access outside the frame contract.
	FrameError
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case FrameError:
		return "FrameError"
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
		return fmt.Sprintf("[render] %s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("[render] %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Cause() error { return e.cause }

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, a...)}
}

// KindOf reports the render error kind of err, walking the cause chain.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		err = errors.Unwrap(err)
	}
	return 0, false
}
