package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestOneRoutineAtATime(t *testing.T) {
	t.Parallel()
	const M = 20
	l := New()
	defer l.Close()
	var cur, maxSeen atomic.Int64
	futures := make([]*Future[struct{}], 0, M)
	for i := 0; i < M; i++ {
		f, err := Spawn(context.Background(), l, func(ctx context.Context) (struct{}, error) {
			for j := 0; j < 3; j++ {
				c := cur.Add(1)
				if m := maxSeen.Load(); c > m {
					maxSeen.CompareAndSwap(m, c)
				}
				time.Sleep(100 * time.Microsecond)
				cur.Add(-1)
				if err := Yield(ctx); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
		futures = append(futures, f)
	}
	for _, f := range futures {
		if _, err := Await(context.Background(), f); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if observed := maxSeen.Load(); observed != 1 {
		t.Fatalf("observed %d routines running at once, want 1", observed)
	}
}

func TestAwaitRespectsCancel(t *testing.T) {
	t.Parallel()
	l := New()
	defer l.Close()
	slow, err := Spawn(context.Background(), l, func(ctx context.Context) (int, error) {
		return 0, Sleep(ctx, time.Hour)
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = Run(ctx, l, func(ctx context.Context) (int, error) {
		return Await(ctx, slow)
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("expected quick abort on cancel, got %v", elapsed)
	}
}

func TestYieldOutsideRoutine(t *testing.T) {
	t.Parallel()
	if err := Yield(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Yield(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
