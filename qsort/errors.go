package qsort

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidConfiguration is returned when a Config cannot be applied to a buffer.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvariantViolation marks internal faults detected while sorting.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

func invalidConfig(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}

// invariantViolation keeps ErrInvariantViolation in the Unwrap chain and
// flags the error as an assertion failure.
func invariantViolation(format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(ErrInvariantViolation, format, args...))
}

// fault carries an invariant error up through the recursion.
type fault struct{ err error }

func raise(format string, args ...interface{}) {
	panic(fault{invariantViolation(format, args...)})
}

// recoverFault turns a recovered panic value into an error; nil stays nil.
func recoverFault(r interface{}) error {
	switch v := r.(type) {
	case nil:
		return nil
	case fault:
		return v.err
	default:
		return invariantViolation("panic during sort: %s", fmt.Sprint(v))
	}
}
