package coder

import "fmt"

// IterationLimitError reports that an executor ran out of iterations
// without the model calling finish.
type IterationLimitError struct {
	Max int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("execution reached maximum iterations (%d) without finishing", e.Max)
}

// ModelError reports an unrecoverable completion failure: a non-retryable
// error, or a retryable one that failed again on the executor's single retry.
type ModelError struct {
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Cause)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// EmptyPlanError reports that the planner finished without producing a plan.
type EmptyPlanError struct{}

func (e *EmptyPlanError) Error() string {
	return "planner finished without producing a plan"
}
