package otel

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/NetPo4ki/go-apiutil/loop"
)

func TestEventsRecordedOnCallerSpan(t *testing.T) {
	t.Parallel()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	l := loop.New(loop.WithObserver(New()))
	defer l.Close()

	ctx, span := tp.Tracer("test").Start(context.Background(), "call")
	boom := errors.New("boom")
	_, err := loop.Run(ctx, l, func(ctx context.Context) (int, error) {
		if err := loop.Yield(ctx); err != nil {
			return 0, err
		}
		return 0, boom
	})
	span.End()
	if err != boom {
		t.Fatalf("expected boom, got %v", err)
	}

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	var names []string
	for _, ev := range ended[0].Events() {
		names = append(names, ev.Name)
	}
	for _, want := range []string{"loop.task.started", "loop.task.finished", "loop.run.joined"} {
		if !slices.Contains(names, want) {
			t.Fatalf("missing event %q in %v", want, names)
		}
	}
	if got := ended[0].Status().Code; got != codes.Error {
		t.Fatalf("expected error status, got %v", got)
	}
}

func TestEventsWithoutSpan(t *testing.T) {
	t.Parallel()
	l := loop.New(loop.WithObserver(New()))
	v, err := loop.Run(context.Background(), l, func(context.Context) (int, error) { return 3, nil })
	if err != nil || v != 3 {
		t.Fatalf("expected (3, nil), got (%d, %v)", v, err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
