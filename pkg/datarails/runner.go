package datarails

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-datarails/pkg/datarails/model"
)

// Runner executes an ordered list of step definitions.
type Runner struct {
	ctx      *Context
	logger   zerolog.Logger
	steps    []Definition
	hooks    []model.RunnerOption
	seeded   []string
	validate bool

	mu     sync.Mutex
	dbx    *DataBox
	report Report
}

// New creates a runner for steps. An empty list is valid and runs as a no-op
// unless WithValidation is set.
func New(steps []Definition, opts ...Option) (*Runner, error) {
	r := &Runner{
		steps:  make([]Definition, len(steps)),
		logger: zerolog.Nop(),
	}
	copy(r.steps, steps)

	for _, opt := range opts {
		opt(r)
	}
	if r.ctx == nil {
		r.ctx = NewContext(nil)
	}

	for _, hook := range r.hooks {
		err := hook.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply runner option")
		}
	}

	return r, nil
}

// Context returns the Context shared by the steps.
func (r *Runner) Context() *Context {
	return r.ctx
}

// DataBox returns the DataBox of the most recent run. It is nil before the first
// run and when the run failed before any step started. After a failed run it
// holds whatever the steps wrote before the failure.
func (r *Runner) DataBox() *DataBox {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dbx
}

// State returns the state of the most recent run.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.State
}

// Report returns a snapshot of the most recent run.
func (r *Runner) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.clone()
}

// Run executes every action of every step in order, against a fresh DataBox.
// It stops on the first failing action and returns its error unmodified.
func (r *Runner) Run(ctx context.Context) error {
	logger, err := r.begin()
	if err != nil {
		return err
	}

	if r.validate {
		err = Validate(r.steps, r.seeded...)
		if err != nil {
			return r.end(logger, err)
		}
	}

	dbx := NewDataBox()
	r.mu.Lock()
	r.dbx = dbx
	r.mu.Unlock()

	for i, def := range r.steps {
		err = r.runStep(ctx, logger, i, def, dbx)
		if err != nil {
			return r.end(logger, err)
		}
	}

	return r.end(logger, r.finishRun())
}

func (r *Runner) begin() (zerolog.Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.report.State == Running {
		return r.logger, ErrAlreadyRunning
	}

	r.dbx = nil
	r.report = Report{
		RunID:     uuid.New(),
		State:     Running,
		StartedAt: time.Now(),
	}

	logger := r.logger.With().Str("run_id", r.report.RunID.String()).Logger()
	logger.Info().Int("steps", len(r.steps)).Msg("run started")

	return logger, nil
}

func (r *Runner) end(logger zerolog.Logger, err error) error {
	r.mu.Lock()
	r.report.FinishedAt = time.Now()
	r.report.Err = err
	if err != nil {
		r.report.State = Failed
	} else {
		r.report.State = Completed
	}
	duration := r.report.Duration()
	r.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("run failed")

		return err
	}

	logger.Info().Dur("duration", duration).Msg("run completed")

	return nil
}

func (r *Runner) runStep(ctx context.Context, logger zerolog.Logger, idx int, def Definition, dbx *DataBox) error {
	step, err := instantiate(def)
	if err != nil {
		return err
	}

	err = step.bind(dbx, r.ctx)
	if err != nil {
		return errors.Wrapf(err, "unable to bind step %q", def.Name)
	}

	actions := step.Actions()
	info := &model.StepInfo{
		Name:    def.Name,
		Index:   idx,
		Actions: actionNames(actions),
	}

	for _, hook := range r.hooks {
		err = hook.PrepareStep(info)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare step hook")
		}
	}

	logger.Debug().Str("step", def.Name).Strs("actions", info.Actions).Msg("step started")

	stepStart := time.Now()
	for j, action := range actions {
		ref := ActionRef{Step: def.Name, Action: action.Name}

		if action.Fn == nil {
			r.markFailed(ref)

			return configErrorf(def.Name, "action %q has no function", action.Name)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			r.markFailed(ref)

			return errors.Wrapf(ctxErr, "run interrupted before %s", ref)
		}

		start := time.Now()
		err = action.Fn(ctx)
		elapsed := time.Since(start)
		if err != nil {
			r.markFailed(ref)
			logger.Error().Err(err).Str("step", def.Name).Str("action", action.Name).Msg("action failed")

			return err
		}

		r.markDone(ref)
		logger.Debug().Str("step", def.Name).Str("action", action.Name).Dur("duration", elapsed).Msg("action completed")

		actionInfo := &model.ActionInfo{Name: action.Name, Index: j}
		for _, hook := range r.hooks {
			err = hook.OnActionDone(info, actionInfo, elapsed)
			if err != nil {
				r.markFailed(ref)

				return errors.Wrap(err, "unable to run action done hook")
			}
		}
	}

	stepDuration := time.Since(stepStart)
	for _, hook := range r.hooks {
		err = hook.AfterStep(info, stepDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run after step hook")
		}
	}

	return nil
}

func (r *Runner) finishRun() error {
	for _, hook := range r.hooks {
		err := hook.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish runner option")
		}
	}

	return nil
}

func (r *Runner) markDone(ref ActionRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Executed = append(r.report.Executed, ref)
}

func (r *Runner) markFailed(ref ActionRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Failed = &ref
}

func instantiate(def Definition) (Step, error) {
	if def.New == nil {
		return nil, configErrorf(def.Name, "constructor must be set")
	}

	step := def.New()
	if step == nil {
		return nil, configErrorf(def.Name, "constructor returned nil")
	}

	return step, nil
}

func actionNames(actions []Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.Name
	}

	return names
}
