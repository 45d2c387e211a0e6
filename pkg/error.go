package pkg

// Sentinel errors for the command-line layer.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadInput is returned when reading a document or data file fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrWriteOutput is returned when writing rendered output fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrYAMLMarshal is returned when YAML marshaling fails.
//
// This error should be wrapped with the underlying marshaling error
// to preserve the error chain.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// ErrLoadState is returned when a persistent parameter store cannot be read
// or decoded.
var ErrLoadState = MakeErrorf("failed to load state")

// ErrSaveState is returned when a persistent parameter store cannot be
// encoded or written.
var ErrSaveState = MakeErrorf("failed to save state")

// ErrInvalidParam is returned when a command-line parameter binding is
// malformed or its expression cannot be evaluated.
//
// This error should be wrapped with the offending binding.
var ErrInvalidParam = MakeErrorf("invalid parameter")

// ErrWriteConfig is returned when the configuration file cannot be written.
var ErrWriteConfig = MakeErrorf("write configuration file")

// ErrFileExists is returned when refusing to overwrite an existing file.
var ErrFileExists = MakeErrorf("file exists (use --force to overwrite)")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(e, err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain appears, in order and
// without gaps, within the receiver's chain. A sentinel created with
// [MakeErrorf] therefore matches every error derived from it with Wrap.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := 0; i+len(t) <= len(e); i++ {
		if slices.EqualFunc(e[i:i+len(t)], t, sameError) {
			return true
		}
	}

	return false
}

// sameError reports whether a and b are the identical error value.
func sameError(a, b error) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}

	return ta == nil || ta.Comparable() && a == b
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}

// ErrCheck is returned when at least one document fails to parse.
var ErrCheck = MakeErrorf("check failed")
