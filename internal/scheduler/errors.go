package scheduler

import (
	"errors"
	"fmt"
)

// Domain errors for generation tasks.
var (
	// ErrBusyStep indicates Step was re-entered from within a step.
	ErrBusyStep = errors.New("scheduler: step re-entered")
)

// TaskError wraps an error with the generation context it occurred in.
type TaskError struct {
	Phase   Phase
	Seed    int64
	Wrapped error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("scheduler: generation (phase %s, seed %d): %v", e.Phase, e.Seed, e.Wrapped)
}

func (e *TaskError) Unwrap() error {
	return e.Wrapped
}
