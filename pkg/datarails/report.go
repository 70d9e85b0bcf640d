package datarails

import (
	"time"

	"github.com/google/uuid"

	"github.com/askiada/go-datarails/pkg/datarails/model"
)

// State is the lifecycle state of a run.
type State int

const (
	Idle State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ActionRef identifies an action of a run.
type ActionRef struct {
	Step   string
	Action string
}

func (a ActionRef) String() string {
	return model.ActionKey(a.Step, a.Action)
}

// Report describes the most recent run of a Runner.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
	Failed     *ActionRef
	Executed   []ActionRef
	RunID      uuid.UUID
	State      State
}

func (rep Report) clone() Report {
	out := rep
	out.Executed = make([]ActionRef, len(rep.Executed))
	copy(out.Executed, rep.Executed)
	if rep.Failed != nil {
		failed := *rep.Failed
		out.Failed = &failed
	}

	return out
}

// Duration is the wall time of the run, zero while it is still running.
func (rep Report) Duration() time.Duration {
	if rep.FinishedAt.IsZero() {
		return 0
	}

	return rep.FinishedAt.Sub(rep.StartedAt)
}
