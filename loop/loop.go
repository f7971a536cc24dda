package loop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

type Option func(*Options)

type Options struct {
	PanicAsError bool
	Observer     Observer
	Logger       *slog.Logger
}

func defaultOptions() Options { return Options{PanicAsError: true} }

func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Routine is a unit of cooperative work. It runs while holding its loop's
// baton and must only suspend through Yield, Sleep or Await with the ctx it
// was given.
type Routine[T any] func(ctx context.Context) (T, error)

type Loop struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	baton   *baton
	wg      sync.WaitGroup
	running atomic.Bool

	mu     sync.Mutex
	closed bool

	opts Options
	obs  Observer
	log  *slog.Logger
}

func New(optFns ...Option) *Loop {
	ctx, cancel := context.WithCancelCause(context.Background())
	l := &Loop{ctx: ctx, cancel: cancel, baton: newBaton(), opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&l.opts)
	}
	l.obs = l.opts.Observer
	l.log = l.opts.Logger
	if l.log == nil {
		l.log = slog.New(slog.DiscardHandler)
	}
	if l.obs != nil {
		l.obs.LoopCreated(ctx)
	}
	return l
}

var (
	defaultOnce sync.Once
	defaultLoop *Loop
)

// Default returns the process-wide loop used when a caller does not name
// one. It is created on first use. Closing it makes every later Run on it
// fail with ErrClosed.
func Default() *Loop {
	defaultOnce.Do(func() { defaultLoop = New() })
	return defaultLoop
}

// FromContext returns the loop whose routine owns ctx.
func FromContext(ctx context.Context) (*Loop, bool) {
	t := taskFrom(ctx)
	if t == nil {
		return nil, false
	}
	return t.loop, true
}

// Running reports whether a Run call is currently driving l.
func (l *Loop) Running() bool { return l.running.Load() }

func (l *Loop) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Run submits fn to l and blocks until it returns, yielding its result.
// Errors returned by fn come back unchanged. Failures of the loop itself are
// reported as *SchedulerError: ErrReentrant when ctx belongs to a routine of
// l, ErrRunning when another caller is driving l, ErrClosed after Shutdown.
//
// A routine that calls Run on its own loop without passing its ctx along
// cannot be detected once no other Run is active, and deadlocks.
func Run[T any](ctx context.Context, l *Loop, fn Routine[T]) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	if fn == nil {
		return zero, ErrNilRoutine
	}
	if t := taskFrom(ctx); t != nil && t.loop == l {
		l.log.Debug("loop run rejected", "reason", "reentrant")
		return zero, &SchedulerError{Op: "run", Err: ErrReentrant}
	}
	if !l.running.CompareAndSwap(false, true) {
		l.log.Debug("loop run rejected", "reason", "running")
		return zero, &SchedulerError{Op: "run", Err: ErrRunning}
	}
	defer l.running.Store(false)

	var start time.Time
	if l.obs != nil {
		start = time.Now()
	}
	f, err := spawn(ctx, l, fn)
	if err != nil {
		return zero, err
	}
	<-f.done
	if l.obs != nil {
		l.obs.RunJoined(ctx, time.Since(start), f.err)
	}
	return f.result()
}

// Spawn starts fn on l without waiting for it. The routine competes for the
// baton with every other routine of l, including one driven by Run.
func Spawn[T any](ctx context.Context, l *Loop, fn Routine[T]) (*Future[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if fn == nil {
		return nil, ErrNilRoutine
	}
	return spawn(ctx, l, fn)
}

func spawn[T any](parent context.Context, l *Loop, fn Routine[T]) (*Future[T], error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, &SchedulerError{Op: "spawn", Err: ErrClosed}
	}
	l.wg.Add(1)
	l.mu.Unlock()

	f := newFuture[T]()
	go execute(parent, l, f, fn)
	return f, nil
}

func execute[T any](parent context.Context, l *Loop, f *Future[T], fn Routine[T]) {
	defer l.wg.Done()
	defer close(f.done)

	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)
	stop := context.AfterFunc(l.ctx, func() { cancel(context.Cause(l.ctx)) })
	defer stop()

	t := &task{loop: l}
	ctx = context.WithValue(ctx, taskKey{}, t)
	if err := t.acquire(ctx); err != nil {
		f.err = err
		return
	}
	defer t.release()

	var start time.Time
	if l.obs != nil {
		start = time.Now()
		l.obs.TaskStarted(ctx)
	}
	defer func() {
		if r := recover(); r != nil {
			perr := &PanicError{Value: r, Stack: debug.Stack()}
			l.log.Error("routine panicked", "panic", r)
			if l.opts.PanicAsError {
				f.err = perr
			} else {
				f.panicked = perr
			}
			if l.obs != nil {
				l.obs.TaskFinished(ctx, time.Since(start), perr, true)
			}
		}
	}()

	f.val, f.err = fn(ctx)
	if l.obs != nil {
		l.obs.TaskFinished(ctx, time.Since(start), f.err, false)
	}
}

// Shutdown closes l, cancels the context of every routine still running on
// it with a ErrClosed cause and waits for them until ctx is done. Called from
// a routine of l it does not wait. It is safe to call more than once.
func (l *Loop) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	l.mu.Lock()
	wasClosed := l.closed
	l.closed = true
	l.mu.Unlock()

	cause := &SchedulerError{Op: "shutdown", Err: ErrClosed}
	l.cancel(cause)
	if !wasClosed {
		l.log.Debug("loop closed")
		if l.obs != nil {
			l.obs.LoopClosed(l.ctx, cause)
		}
	}

	if t := taskFrom(ctx); t != nil && t.loop == l {
		return nil
	}
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close is Shutdown without a deadline.
func (l *Loop) Close() error {
	return l.Shutdown(context.Background())
}
