// Package errorkit provides error handling helpers for the lazyseq module.
package errorkit

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an error implementation that makes it possible
// to declare exported error values with the `const` keyword.
//
//	const ErrSomething errorkit.Error = "something went wrong"
type Error string

// Error implements the error interface.
func (err Error) Error() string { return string(err) }

// F returns an error that wraps this Error with formatted detail,
// matchable against the original with errors.Is.
func (err Error) F(format string, a ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, a...))
}

// Merge combines the given non-nil error values into a single error value.
// When no non-nil error is given, Merge returns nil,
// and when only one is given, that error is returned as is.
func Merge(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

func (errs multiError) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

func (errs multiError) Is(target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (errs multiError) As(target any) bool {
	for _, err := range errs {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}
