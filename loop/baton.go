package loop

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// baton is the run token of a loop. Waiters are served in FIFO order, so a
// routine that yields queues behind every routine already waiting.
type baton struct {
	sem *semaphore.Weighted
}

func newBaton() *baton {
	return &baton{sem: semaphore.NewWeighted(1)}
}

func (b *baton) Acquire(ctx context.Context) error {
	return b.sem.Acquire(ctx, 1)
}

func (b *baton) Release() {
	b.sem.Release(1)
}

type taskKey struct{}

// task is the per-routine view of the baton. held is only touched from the
// routine's own goroutine.
type task struct {
	loop *Loop
	held bool
}

func taskFrom(ctx context.Context) *task {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(taskKey{}).(*task)
	return t
}

func (t *task) acquire(ctx context.Context) error {
	if err := t.loop.baton.Acquire(ctx); err != nil {
		return context.Cause(ctx)
	}
	t.held = true
	return nil
}

func (t *task) release() {
	if !t.held {
		return
	}
	t.held = false
	t.loop.baton.Release()
}

// suspend gives the baton away until resume. resume waits for the baton even
// when ctx is already done: a routine never runs without it.
func (t *task) suspend() { t.release() }

func (t *task) resume(ctx context.Context) {
	if t.held {
		return
	}
	_ = t.loop.baton.Acquire(context.WithoutCancel(ctx))
	t.held = true
}
