// Package collerr defines the structured error type shared by all guarded
// containers. Containers never log, retry, or suppress: every violation is
// surfaced synchronously to the caller as an *Error carrying a stable code.
package collerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Category classifies errors by their nature and appropriate handling strategy.
type Category int

const (
	// CategoryUsage represents caller mistakes unrelated to container state:
	// nil owner tokens, empty field names, malformed construction arguments.
	CategoryUsage Category = iota

	// CategoryImmutability represents attempts to change data the container
	// has permanently fixed: overwriting or deleting a written entry,
	// rebinding a declared record field.
	CategoryImmutability

	// CategoryConcurrency represents violations of a container's locking
	// contract: acquiring a held flag, releasing an idle one, touching a
	// sequence owned by someone else.
	CategoryConcurrency
)

// Code is a stable identifier for a single failure mode. Callers match on
// codes with HasCode rather than parsing messages.
type Code string

const (
	// CodeKeyConflict marks an insert over a key that already exists.
	CodeKeyConflict Code = "KEY_CONFLICT"

	// CodeImmutableEntry marks an update or delete of a written entry.
	CodeImmutableEntry Code = "IMMUTABLE_ENTRY"

	// CodeKeyNotFound marks a lookup of an undeclared field name.
	CodeKeyNotFound Code = "KEY_NOT_FOUND"

	// CodeIndexOutOfRange marks positional access outside [0, len).
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// CodeAlreadyLocked marks an acquire of a flag that is already set.
	CodeAlreadyLocked Code = "ALREADY_LOCKED"

	// CodeNotLocked marks a release of a flag that is not set.
	CodeNotLocked Code = "NOT_LOCKED"

	// CodeListLocked marks a sequence operation rejected by a held lock.
	CodeListLocked Code = "LIST_LOCKED"

	// CodeNotOwner marks a release attempted by a caller that does not
	// hold the lock.
	CodeNotOwner Code = "NOT_OWNER"

	// CodeInvalidArgument marks malformed input to a container call.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is a structured container error with context about where and why
// the offending call failed.
type Error struct {
	// Code is the stable identifier for this failure mode.
	Code Code

	// Category classifies the error for handling strategy.
	Category Category

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides context about the specific instance, for example
	// "key 'answer' already holds 42".
	Detail string

	// Operation names the container call that failed, e.g. "Insert".
	Operation string

	// Component names the container type, e.g. "ConstantDict".
	Component string

	// Cause is the underlying error, if this error wraps one.
	Cause error

	// Stack holds the call stack captured when the error was created.
	Stack []uintptr
}

// New creates a new Error with the given code, category, and message.
func New(category Category, code Code, message string) *Error {
	return &Error{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with container context. If err is already an
// *Error, a copy is returned with operation and component filled in where
// missing and the original code kept; err itself is never modified, so
// wrapping a shared error value has no side effects on other holders.
func Wrap(err error, code Code, operation, component string) *Error {
	if err == nil {
		return nil
	}

	var cerr *Error
	if errors.As(err, &cerr) {
		clone := *cerr
		if clone.Operation == "" {
			clone.Operation = operation
		}
		if clone.Component == "" {
			clone.Component = component
		}
		return &clone
	}

	return &Error{
		Code:      code,
		Category:  CategoryUsage,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail attaches instance-specific context and returns the error.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithOperation records the failing call and component and returns the error.
func (e *Error) WithOperation(operation, component string) *Error {
	e.Operation = operation
	e.Component = component
	return e
}

// captureStack skips the frames of this package so the stack starts at the
// container method that produced the error.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface.
//
// The format follows the pattern:
// [CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As
// traversal through the chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HasCode reports whether err, or any error it wraps, carries the given code.
func HasCode(err error, code Code) bool {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return false
	}
	return cerr.Code == code
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *Error) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
