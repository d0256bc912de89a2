package middleware

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// RecoveryError wraps a panic value with the stack trace.
type RecoveryError struct {
	// PanicValue is the original value that was passed to panic().
	PanicValue any
	// StackTrace contains the stack of the panicking goroutine.
	StackTrace string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.PanicValue)
}

// Recover converts a panic during processing into a *RecoveryError.
func Recover[In, Out any]() Middleware[In, Out] {
	return func(next ProcessFunc[In, Out]) ProcessFunc[In, Out] {
		return func(ctx context.Context, in In) (out []Out, err error) {
			var c panics.Catcher
			c.Try(func() {
				out, err = next(ctx, in)
			})
			if r := c.Recovered(); r != nil {
				return nil, &RecoveryError{
					PanicValue: r.Value,
					StackTrace: string(r.Stack),
				}
			}
			return out, err
		}
	}
}
