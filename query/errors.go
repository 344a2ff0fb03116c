package query

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every NotFoundError.
	ErrNotFound = errors.New("no matching element")
	// ErrNameMismatch reports a name constraint that contradicts an
	// aria-label property query.
	ErrNameMismatch = errors.New("name does not match aria-label")
)

// NotFoundError reports a query with no match.
type NotFoundError struct {
	Selector string
	Name     string
	// Err refines the reason; nil means plain absence.
	Err error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no element matches %q", e.Selector)
	if e.Name != "" {
		msg += fmt.Sprintf(" with name %q", e.Name)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNotFound, e.Err}
	}
	return []error{ErrNotFound}
}

// SelectorError reports a selector the document could not compile.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q: %v", e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error { return e.Err }
