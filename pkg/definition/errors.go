package definition

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a single problem found in a definition.
type ValidationError struct {
	Path   string // e.g. layers[0].transitions[2].to
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// AggregateError collects every problem found while validating a definition.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns the individual problems if err wraps an AggregateError.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

type collector struct {
	errs []error
}

func (c *collector) addf(path, format string, args ...any) {
	c.errs = append(c.errs, &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: c.errs}
}
