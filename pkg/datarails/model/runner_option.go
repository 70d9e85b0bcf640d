package model

import "time"

// RunnerOption defines the interface for options hooked into a runner.
type RunnerOption interface {
	// New initialises the runner option.
	New() error
	// PrepareStep runs once a step is instantiated and bound, before its first action.
	PrepareStep(step *StepInfo) error
	// OnActionDone runs every time an action returns without error.
	OnActionDone(step *StepInfo, action *ActionInfo, duration time.Duration) error
	// AfterStep runs when every action of the step has completed.
	AfterStep(step *StepInfo, totalDuration time.Duration) error
	// Finish runs after a run completed. It is not called for failed runs.
	Finish() error
}
