package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-datarails/pkg/datarails/measure"
	"github.com/askiada/go-datarails/pkg/datarails/model"
)

type runnerDrawer struct {
	Drawer
	m    measure.Measure
	last string
}

func (rd *runnerDrawer) New() error {
	err := rd.AddStep(model.StartStep.Name, "")
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = rd.AddStep(model.EndStep.Name, "")
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	rd.last = model.StartStep.Name

	return nil
}

func (rd *runnerDrawer) PrepareStep(step *model.StepInfo) error {
	if step.Index == 0 {
		rd.last = model.StartStep.Name
	}

	for _, action := range step.Actions {
		name := model.ActionKey(step.Name, action)
		err := rd.AddStep(name, step.Name)
		if err != nil {
			return err
		}
		err = rd.AddLink(rd.last, name)
		if err != nil {
			return err
		}
		rd.last = name
	}

	return nil
}

func (rd *runnerDrawer) OnActionDone(*model.StepInfo, *model.ActionInfo, time.Duration) error {
	return nil
}

func (rd *runnerDrawer) AfterStep(*model.StepInfo, time.Duration) error {
	return nil
}

func (rd *runnerDrawer) Finish() error {
	err := rd.AddLink(rd.last, model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to link end step")
	}

	if rd.m != nil {
		err = rd.AddMeasure(rd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = rd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw run")
	}

	return nil
}

// PipelineDrawer draws the chain of actions a run executes, from the start node
// to the end node. When m is not nil, the measured durations are added before
// drawing. Register the measure hook before this one so that it is complete when
// Finish runs.
func PipelineDrawer(drawer Drawer, m measure.Measure) model.RunnerOption {
	return &runnerDrawer{Drawer: drawer, m: m}
}
