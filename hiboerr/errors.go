// Package hiboerr defines the structural-violation error types raised
// by the term/position contract (I1-I5) and stack-trace/panic recovery
// helpers. The library entry points do not call Recover: a structural
// violation panics through Analyze and Canonize to their caller.
package hiboerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidPositionError signals a violation of I1: a position does not
// address a well-formed sub-term of the interaction it is applied to.
type InvalidPositionError struct {
	Reason string
}

func (e InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: %s", e.Reason)
}

// EmptyRecipientListError signals a violation of I2: a reception (or an
// emission under async passing) would end up with no recipients.
type EmptyRecipientListError struct {
	Reason string
}

func (e EmptyRecipientListError) Error() string {
	return fmt.Sprintf("empty recipient list: %s", e.Reason)
}

// InvalidSubIndexError signals an Epsilon sub-index out of range, or
// present/absent in violation of I1 (present iff async reception).
type InvalidSubIndexError struct {
	Reason string
}

func (e InvalidSubIndexError) Error() string {
	return fmt.Sprintf("invalid sub-index: %s", e.Reason)
}

// FlagInvariantError signals a violation of I3/I4/I5 on multi-trace
// analysis flags.
type FlagInvariantError struct {
	Reason string
}

func (e FlagInvariantError) Error() string {
	return fmt.Sprintf("flag invariant violated: %s", e.Reason)
}

// WithStackTrace wraps err with a stack trace captured at the call
// site, mirroring the teacher's errors.WithStackTrace helper built on
// the same underlying library. Returns nil if err is nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(err)
}

// Recover invokes fn and recovers any panic raised within it, handing
// the panic value (converted to an error, with a stack trace attached)
// to onPanic. Structural-violation types defined in this package are
// the expected panic payloads; any other panic value is wrapped via
// fmt.Errorf before being passed along.
func Recover(fn func(), onPanic func(cause error)) {
	defer func() {
		if r := recover(); r != nil {
			var cause error

			switch v := r.(type) {
			case error:
				cause = v
			default:
				cause = fmt.Errorf("panic: %v", v)
			}

			onPanic(WithStackTrace(cause))
		}
	}()

	fn()
}
