package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NetPo4ki/go-apiutil/loop"
)

var _ loop.Observer = (*Events)(nil)

// Events adds span events for loop activity. Contexts without a recording
// span cost a lookup and nothing else.
type Events struct{}

// New returns an Events observer.
func New() *Events { return &Events{} }

func (*Events) LoopCreated(ctx context.Context) {
	trace.SpanFromContext(ctx).AddEvent("loop.created")
}

func (*Events) LoopClosed(ctx context.Context, cause error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("loop.closed", trace.WithAttributes(attribute.String("loop.cause", errString(cause))))
}

func (*Events) RunJoined(ctx context.Context, wait time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("loop.run.joined", trace.WithAttributes(
		attribute.Int64("loop.run.wait_us", wait.Microseconds()),
	))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (*Events) TaskStarted(ctx context.Context) {
	trace.SpanFromContext(ctx).AddEvent("loop.task.started")
}

func (*Events) TaskFinished(ctx context.Context, dur time.Duration, err error, panicked bool) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("loop.task.finished", trace.WithAttributes(
		attribute.Int64("loop.task.duration_us", dur.Microseconds()),
		attribute.Bool("loop.task.panicked", panicked),
	))
	if err != nil {
		span.RecordError(err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
