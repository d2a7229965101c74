// Package future provides the async result handle: a single-writer,
// multiple-reader holder for the eventual outcome of one submitted
// operation.
package future

import (
	"context"
	"sync"
)

// Result is the eventual outcome of a submitted operation. It starts
// pending and settles exactly once, to either a value or an error. Reads
// after settlement always return the identical outcome.
type Result[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// New creates a pending Result and the completion function that settles it.
// The completion function may be called from any goroutine; the first call
// wins and later calls are no-ops.
func New[T any]() (*Result[T], func(T, error)) {
	r := &Result[T]{done: make(chan struct{})}
	complete := func(v T, err error) {
		r.once.Do(func() {
			r.value = v
			r.err = err
			close(r.done)
		})
	}
	return r, complete
}

// Wait blocks until the result settles and returns its outcome. A failed
// result returns the captured error verbatim on every call.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.value, r.err
}

// WaitContext blocks until the result settles or ctx is done. A context
// error does not settle the result; other readers can still wait on it.
func (r *Result[T]) WaitContext(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the result settles.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Completed reports whether the result has settled.
func (r *Result[T]) Completed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
