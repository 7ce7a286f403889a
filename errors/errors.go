package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Kinds shared by every extension. Codes 2 to 99 belong to this package,
// extensions register their own kinds above that range.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrExpired            = Register(15, "expired")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrDatabase           = Register(17, "database")

	// ErrPanic marks a recovered panic. Its message is never shown to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered kind by code. Code 1 is reserved for
// errors that do not carry a code.
var registry = map[uint32]*Error{1: nil}

// Register declares a new error kind. It panics when the code is already
// taken, so it is meant to be called from package level variable
// declarations only.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		desc := "reserved"
		if prev != nil {
			desc = prev.desc
		}
		panic(fmt.Sprintf("error code %d is already registered: %q", code, desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a registered error kind. Runtime errors wrap one of the kinds so
// that callers can test for it with Is and clients receive its code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the registered code.
func (e Error) ABCICode() uint32 {
	return e.code
}

// Is returns true if err is this kind or wraps it. A nil kind matches only a
// nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap annotates err with description. The innermost wrap records the stack
// trace. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover must be deferred. It turns a panic into an ErrPanic assigned to
// err.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Cause returns the innermost error of the chain.
func Cause(err error) error {
	return errors.Cause(err)
}

type causer interface {
	Cause() error
}

// errIsNil also reports a typed nil pointer stored in the interface as nil.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
