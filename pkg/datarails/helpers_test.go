package datarails_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/askiada/go-datarails/pkg/datarails"
	"github.com/askiada/go-datarails/pkg/datarails/model"
)

// recorder collects the order in which actions and hooks fire.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (rec *recorder) add(format string, args ...any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = append(rec.events, fmt.Sprintf(format, args...))
}

func (rec *recorder) all() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]string, len(rec.events))
	copy(out, rec.events)

	return out
}

// recordingStep defines a step whose actions only record their own execution.
func recordingStep(t *testing.T, rec *recorder, name string, actions ...string) datarails.Definition {
	t.Helper()

	funcs := make([]datarails.FuncAction, len(actions))
	for i, action := range actions {
		action := action
		funcs[i] = datarails.FuncAction{
			Name: action,
			Fn: func(_ context.Context, _ *datarails.DataBox, _ *datarails.Context) error {
				rec.add("%s.%s", name, action)

				return nil
			},
		}
	}

	return datarails.Funcs(name, funcs...)
}

// hookRecorder is a runner option recording every callback.
type hookRecorder struct {
	rec       *recorder
	failOn    string
	newCalled bool
}

func (h *hookRecorder) fail(event string) error {
	if h.failOn != "" && strings.HasPrefix(event, h.failOn) {
		return fmt.Errorf("hook failed on %s", event)
	}

	return nil
}

func (h *hookRecorder) New() error {
	h.newCalled = true

	return h.fail("new")
}

func (h *hookRecorder) PrepareStep(step *model.StepInfo) error {
	event := fmt.Sprintf("prepare %s %v", step.Name, step.Actions)
	h.rec.add("%s", event)

	return h.fail(event)
}

func (h *hookRecorder) OnActionDone(step *model.StepInfo, action *model.ActionInfo, _ time.Duration) error {
	event := fmt.Sprintf("done %s", model.ActionKey(step.Name, action.Name))
	h.rec.add("%s", event)

	return h.fail(event)
}

func (h *hookRecorder) AfterStep(step *model.StepInfo, _ time.Duration) error {
	event := fmt.Sprintf("after %s", step.Name)
	h.rec.add("%s", event)

	return h.fail(event)
}

func (h *hookRecorder) Finish() error {
	h.rec.add("finish")

	return h.fail("finish")
}

var _ model.RunnerOption = (*hookRecorder)(nil)
