package loop

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is reported when a loop is used after Shutdown or Close.
	ErrClosed = errors.New("loop: closed")
	// ErrRunning is reported when Run is called while another caller is
	// already driving the same loop.
	ErrRunning = errors.New("loop: already running")
	// ErrReentrant is reported when a routine running on a loop calls Run
	// on that same loop.
	ErrReentrant = errors.New("loop: reentrant run")
	// ErrNilRoutine is returned by Run and Spawn for a nil routine.
	ErrNilRoutine = errors.New("loop: nil routine")
)

// SchedulerError reports that the loop itself could not serve a request.
// It never wraps an error returned by a routine.
type SchedulerError struct {
	Op  string
	Err error
}

func (e *SchedulerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SchedulerError) Unwrap() error { return e.Err }

// PanicError carries a value recovered from a panicking routine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
