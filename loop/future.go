package loop

import (
	"context"
	"time"
)

// Future is the pending result of a spawned routine.
type Future[T any] struct {
	done     chan struct{}
	val      T
	err      error
	panicked *PanicError
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Done is closed once the routine has returned.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

func (f *Future[T]) result() (T, error) {
	if f.panicked != nil {
		panic(f.panicked.Value)
	}
	return f.val, f.err
}

// Yield lets every routine already waiting on the loop run before the
// caller continues. Outside a routine it only reports ctx's state.
func Yield(ctx context.Context) error {
	if t := taskFrom(ctx); t != nil {
		t.suspend()
		t.resume(ctx)
	}
	return ctx.Err()
}

// Sleep suspends the calling routine for d, or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if t := taskFrom(ctx); t != nil {
		t.suspend()
		defer t.resume(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Await suspends the calling routine until f completes or ctx is done.
// With panics not converted to errors, a panic of f's routine is re-raised
// here.
func Await[T any](ctx context.Context, f *Future[T]) (T, error) {
	if t := taskFrom(ctx); t != nil {
		t.suspend()
		defer t.resume(ctx)
	}
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	return f.result()
}
