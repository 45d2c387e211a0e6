package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Kind classifies an [Error] by the phase that produced it.
type Kind int

const (
	KindNone    Kind = iota // none
	KindLexical             // lexical
	KindSyntax              // syntax
	KindRuntime             // runtime
)

// Category sentinels. Any [Error] of the matching [Kind] satisfies
// errors.Is against these.
var (
	ErrLexical = &Error{msg: "lexical error", kind: KindLexical, class: true}
	ErrSyntax  = &Error{msg: "syntax error", kind: KindSyntax, class: true}
	ErrRuntime = &Error{msg: "runtime error", kind: KindRuntime, class: true}
)

// Lexical errors.
var (
	ErrUnterminatedString = newError(KindLexical, "unterminated string")
	ErrInvalidEscape      = newError(KindLexical, "invalid string escape")
	ErrInvalidNumber      = newError(KindLexical, "invalid number")
	ErrUnterminatedTag    = newError(KindLexical, "unterminated tag")
	ErrUnexpectedChar     = newError(KindLexical, "unexpected character")
	ErrInvalidName        = newError(KindLexical, "invalid name")
)

// Syntax errors.
var (
	ErrUnknownTag     = newError(KindSyntax, "unknown tag name")
	ErrForVariable    = newError(KindSyntax, "first for tag element is not a variable")
	ErrForArgument    = newError(KindSyntax, "for tag arguments cannot be operators or functions")
	ErrForArity       = newError(KindSyntax, "invalid number of for tag elements")
	ErrNoOpenTag      = newError(KindSyntax, "there are no non-empty tags to close")
	ErrInvalidEndTag  = newError(KindSyntax, "invalid end tag")
	ErrTooManyEndTags = newError(KindSyntax, "too many end tags")
	ErrUnclosedTag    = newError(KindSyntax, "non-empty tag was never closed")
	ErrUnexpectedTok  = newError(KindSyntax, "unexpected token")
)

// Runtime errors.
var (
	ErrInvalidOperand  = newError(KindRuntime, "invalid operand")
	ErrDivisionByZero  = newError(KindRuntime, "division by zero")
	ErrUnknownOperator = newError(KindRuntime, "unknown operator")
	ErrUnknownFunction = newError(KindRuntime, "unknown function")
	ErrStackUnderflow  = newError(KindRuntime, "not enough operands")
	ErrNoSuchStack     = newError(KindRuntime, "no such stack")
	ErrInvalidKey      = newError(KindRuntime, "invalid key")
	ErrInvalidFormat   = newError(KindRuntime, "invalid decimal format")
	ErrHeaderGenerated = newError(KindRuntime, "header already generated")
	ErrWrite           = newError(KindRuntime, "write failed")
)

// ErrReadInput reports a failure reading a document before parsing.
var ErrReadInput = NewError("failed to read input")

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap], [Error.With] or
// [Error.WithPosition] still match that sentinel with errors.Is.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	origin *Error      // Sentinel this error was derived from
	pos    *Position   // Source position, if known
	attrs  []slog.Attr // Attributes for structured logging
	kind   Kind
	class  bool // Matches every error of kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{msg: msg, kind: kind}
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
//	"<line>:<col>: <msg>: <err>"
//
// with each part omitted when unset.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if e.pos != nil {
		return e.pos.String() + ": " + s
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or a
// category sentinel ([ErrLexical], [ErrSyntax], [ErrRuntime]) matching
// e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.class {
		return e.kind != KindNone && e.kind == t.kind
	}

	return e.root() == t.root()
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.kind != KindNone {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.derive()
	c.pos = &pos

	return c
}

func (e *Error) derive() *Error {
	return &Error{
		msg:    e.msg,
		err:    e.err,
		origin: e.root(),
		pos:    e.pos,
		attrs:  e.attrs, // Share attrs
		kind:   e.kind,
		class:  e.class,
	}
}

func (e *Error) root() *Error {
	if e.origin != nil {
		return e.origin
	}

	return e
}

// atPosition attaches pos to err unless it already carries a position.
func atPosition(err error, pos Position) error {
	e, ok := err.(*Error)
	if !ok || e.pos != nil {
		return err
	}

	return e.WithPosition(pos)
}
