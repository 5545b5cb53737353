package rxstate

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered from a user function (an update
// function or an event mapper) together with the stack captured at the
// point of the panic. It is returned wrapped in an [*OpError], and the
// operation that panicked has no effect.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	// runtime.Stack truncates to the buffer size.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// call runs fn, converting a panic into a *PanicError.
func call[A, R any](fn func(A) (R, error), arg A) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn(arg)
}
