package measure

import (
	"time"

	"github.com/askiada/go-datarails/pkg/datarails/model"
)

type runnerMeasure struct {
	Measure
	runDuration time.Duration
}

func (rm *runnerMeasure) New() error {
	rm.AddMetric(model.StartStep.Name)
	rm.AddMetric(model.EndStep.Name)

	return nil
}

func (rm *runnerMeasure) PrepareStep(step *model.StepInfo) error {
	if step.Index == 0 {
		rm.runDuration = 0
	}

	rm.AddMetric(step.Name)
	for _, action := range step.Actions {
		rm.AddMetric(model.ActionKey(step.Name, action))
	}

	return nil
}

func (rm *runnerMeasure) OnActionDone(step *model.StepInfo, action *model.ActionInfo, duration time.Duration) error {
	rm.AddMetric(model.ActionKey(step.Name, action.Name)).AddDuration(duration)

	return nil
}

func (rm *runnerMeasure) AfterStep(step *model.StepInfo, totalDuration time.Duration) error {
	mt := rm.AddMetric(step.Name)
	mt.AddDuration(totalDuration)
	mt.SetTotalDuration(totalDuration)
	rm.runDuration += totalDuration

	return nil
}

func (rm *runnerMeasure) Finish() error {
	rm.AddMetric(model.StartStep.Name).SetTotalDuration(rm.runDuration)
	rm.AddMetric(model.EndStep.Name).SetTotalDuration(rm.runDuration)

	return nil
}

// PipelineMeasure records step and action durations into measure. Steps are
// measured under their name and actions under model.ActionKey.
func PipelineMeasure(measure Measure) model.RunnerOption {
	return &runnerMeasure{Measure: measure}
}
