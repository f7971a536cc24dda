package bridge

import (
	"context"

	"github.com/NetPo4ki/go-apiutil/loop"
)

// Binder produces a bridge bound to a receiver.
type Binder[S, A, R any] interface {
	Bind(recv S) *Bridge[A, R]
}

// Method wraps an unbound method expression such as (*Widget).Refresh.
// The Method itself stays unbound: it is what callers introspect at the type
// level, and Bind derives the callable form for one receiver.
type Method[S, A, R any] struct {
	fn  func(S, context.Context, A) (R, error)
	cfg config
}

func NewMethod[S, A, R any](fn func(S, context.Context, A) (R, error), opts ...Option) *Method[S, A, R] {
	if fn == nil {
		panic("bridge: nil method")
	}
	return &Method[S, A, R]{fn: fn, cfg: newConfig(fn, opts)}
}

// Bind returns a new Bridge calling the method on recv. It shares the
// method's loop, name and doc.
func (m *Method[S, A, R]) Bind(recv S) *Bridge[A, R] {
	fn := m.fn
	return &Bridge[A, R]{
		fn: func(ctx context.Context, arg A) (R, error) {
			return fn(recv, ctx, arg)
		},
		cfg: m.cfg,
	}
}

// Call invokes the method on an explicit receiver.
func (m *Method[S, A, R]) Call(ctx context.Context, recv S, arg A) (R, error) {
	return m.Bind(recv).Call(ctx, arg)
}

func (m *Method[S, A, R]) Name() string { return m.cfg.name }

func (m *Method[S, A, R]) Doc() string { return m.cfg.doc }

func (m *Method[S, A, R]) Loop() *loop.Loop { return m.cfg.loop }

func (m *Method[S, A, R]) String() string { return "method " + m.cfg.name }
