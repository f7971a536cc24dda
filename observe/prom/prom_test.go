package prom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/NetPo4ki/go-apiutil/loop"
)

func TestMetricsCountLoopActivity(t *testing.T) {
	t.Parallel()
	m := New()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m)

	l := loop.New(loop.WithObserver(m))
	_, err := loop.Run(context.Background(), l, func(ctx context.Context) (int, error) {
		f, err := loop.Spawn(ctx, l, func(context.Context) (int, error) {
			return 0, errors.New("child failed")
		})
		if err != nil {
			return 0, err
		}
		_, _ = loop.Await(ctx, f)
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loop.Run(context.Background(), l, func(context.Context) (int, error) {
		panic("boom")
	}); err == nil {
		t.Fatal("expected panic error")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"created", m.loopsCreated, 1},
		{"closed", m.loopsClosed, 1},
		{"started", m.tasksStarted, 3},
		{"active", m.activeTasks, 0},
		{"finished ok", m.tasksFinished.WithLabelValues("ok"), 1},
		{"finished error", m.tasksFinished.WithLabelValues("error"), 1},
		{"finished panic", m.tasksFinished.WithLabelValues("panic"), 1},
		{"runs ok", m.runs.WithLabelValues("ok"), 1},
		{"runs error", m.runs.WithLabelValues("error"), 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}

	n, err := testutil.GatherAndCount(reg, "loop_tasks_started_total", "loop_run_wait_seconds")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 gathered series, got %d", n)
	}
}
