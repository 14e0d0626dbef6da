package crfgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for run configuration and naming failures.
var (
	ErrNoRecords     = errors.New("crfgen: no records to render")
	ErrNoVersion     = errors.New("crfgen: version is required")
	ErrBadName       = errors.New("crfgen: invalid output file name")
	ErrDuplicateName = errors.New("crfgen: output file name used by more than one form")
	ErrUnknownOrder  = errors.New("crfgen: unknown form order")
)

// FormError reports a failure while producing the document of one form.
// Other forms are not affected by it.
type FormError struct {
	Form string // form name as it appears in the dictionary
	Op   string // "name", "create", "render" or "close"
	Err  error
}

func (e *FormError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crfgen: form %q: %s: %v", e.Form, e.Op, e.Err)
	}
	return fmt.Sprintf("crfgen: form %q: %s: unknown error", e.Form, e.Op)
}

func (e *FormError) Unwrap() error {
	return e.Err
}

func newFormError(form, op string, err error) *FormError {
	return &FormError{Form: form, Op: op, Err: err}
}
