package compiler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CompileError is returned by Compile when the source failed to compile.
// Only the first diagnostic is ever the "primary" one — tinylox's compiler
// follows a collect-and-suppress policy (see Parser.errorAt): once the
// parser enters panic mode, further diagnostics are swallowed rather than
// cascading, and only counted. Error() therefore renders the first message
// plus, if any were suppressed, a trailing count — matching the single
// formatted line spec.md promises at the embedding boundary while still
// keeping the suppressed diagnostics around (via Errors) for a caller that
// wants them.
type CompileError struct {
	errs *multierror.Error
}

// Error renders the primary diagnostic. If additional diagnostics were
// suppressed by panic mode, their count is appended.
func (e *CompileError) Error() string {
	if e == nil || e.errs == nil || len(e.errs.Errors) == 0 {
		return "compile error"
	}
	primary := e.errs.Errors[0].Error()
	suppressed := len(e.errs.Errors) - 1
	if suppressed == 0 {
		return primary
	}
	return fmt.Sprintf("%s (%d additional diagnostic(s) suppressed)", primary, suppressed)
}

// Errors returns every diagnostic recorded during compilation, primary
// diagnostic first.
func (e *CompileError) Errors() []error {
	if e == nil || e.errs == nil {
		return nil
	}
	return e.errs.Errors
}

func (e *CompileError) Unwrap() error {
	if e == nil || e.errs == nil {
		return nil
	}
	return e.errs.ErrorOrNil()
}
