// Package bridge turns cooperative routines into ordinary blocking calls.
// A Bridge wraps one routine and runs it to completion on a loop.Loop every
// time it is called. A Method wraps an unbound method expression and binds
// it to receivers, producing Bridges that share the method's loop.
package bridge

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"github.com/NetPo4ki/go-apiutil/loop"
)

type Option func(*config)

type config struct {
	loop *loop.Loop
	name string
	doc  string
}

// WithLoop selects the loop calls are driven on. Without it the loop is
// loop.Default(), resolved once at construction.
func WithLoop(l *loop.Loop) Option { return func(c *config) { c.loop = l } }

func WithName(name string) Option { return func(c *config) { c.name = name } }

// WithDoc attaches the wrapped routine's documentation.
func WithDoc(doc string) Option { return func(c *config) { c.doc = doc } }

func newConfig(fn any, opts []Option) config {
	c := config{name: funcName(fn)}
	for _, o := range opts {
		o(&c)
	}
	if c.loop == nil {
		c.loop = loop.Default()
	}
	return c
}

// Caller is anything that can be called like a Bridge.
type Caller[A, R any] interface {
	Call(ctx context.Context, arg A) (R, error)
}

type Bridge[A, R any] struct {
	fn  func(context.Context, A) (R, error)
	cfg config
}

// New wraps fn. It starts no work; fn runs only when the bridge is called.
func New[A, R any](fn func(context.Context, A) (R, error), opts ...Option) *Bridge[A, R] {
	if fn == nil {
		panic("bridge: nil function")
	}
	return &Bridge[A, R]{fn: fn, cfg: newConfig(fn, opts)}
}

// Call runs the wrapped routine with arg on the bridge's loop and blocks
// until it returns. Errors from the routine are returned as is; loop
// failures are *loop.SchedulerError.
func (b *Bridge[A, R]) Call(ctx context.Context, arg A) (R, error) {
	fn := b.fn
	return loop.Run(ctx, b.cfg.loop, func(ctx context.Context) (R, error) {
		return fn(ctx, arg)
	})
}

func (b *Bridge[A, R]) Name() string { return b.cfg.name }

func (b *Bridge[A, R]) Doc() string { return b.cfg.doc }

func (b *Bridge[A, R]) Loop() *loop.Loop { return b.cfg.loop }

// Wrapped returns the routine the bridge calls.
func (b *Bridge[A, R]) Wrapped() func(context.Context, A) (R, error) { return b.fn }

func (b *Bridge[A, R]) String() string { return "bridge " + b.cfg.name }

// funcName is the bare name of fn: no package path, receiver or method
// value suffix.
func funcName(fn any) string {
	rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if rf == nil {
		return ""
	}
	name := strings.TrimSuffix(rf.Name(), "-fm")
	name = strings.TrimSuffix(name, "[...]")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
