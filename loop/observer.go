package loop

import (
	"context"
	"time"
)

// Observer receives loop lifecycle hooks. TaskStarted and TaskFinished run
// on the routine's goroutine with the routine's context, RunJoined on the
// goroutine that called Run.
type Observer interface {
	LoopCreated(ctx context.Context)
	LoopClosed(ctx context.Context, cause error)
	RunJoined(ctx context.Context, wait time.Duration, err error)
	TaskStarted(ctx context.Context)
	TaskFinished(ctx context.Context, dur time.Duration, err error, panicked bool)
}

// Observers combines several observers into one, called in order.
// Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	var list multi
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multi []Observer

func (m multi) LoopCreated(ctx context.Context) {
	for _, o := range m {
		o.LoopCreated(ctx)
	}
}

func (m multi) LoopClosed(ctx context.Context, cause error) {
	for _, o := range m {
		o.LoopClosed(ctx, cause)
	}
}

func (m multi) RunJoined(ctx context.Context, wait time.Duration, err error) {
	for _, o := range m {
		o.RunJoined(ctx, wait, err)
	}
}

func (m multi) TaskStarted(ctx context.Context) {
	for _, o := range m {
		o.TaskStarted(ctx)
	}
}

func (m multi) TaskFinished(ctx context.Context, dur time.Duration, err error, panicked bool) {
	for _, o := range m {
		o.TaskFinished(ctx, dur, err, panicked)
	}
}
