package datarails

import (
	"github.com/rs/zerolog"

	"github.com/askiada/go-datarails/pkg/datarails/model"
)

type Option func(r *Runner)

// WithContext shares c with every step. Without it the steps see an empty Context.
func WithContext(c *Context) Option {
	return func(r *Runner) {
		r.ctx = c
	}
}

// WithLogger sets the logger of the runner. The runner is silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHooks registers runner options such as measures and drawers.
func WithHooks(hooks ...model.RunnerOption) Option {
	return func(r *Runner) {
		r.hooks = append(r.hooks, hooks...)
	}
}

// WithValidation checks the step list with Validate before each run. Seeded names
// are datasets considered present before the first step.
func WithValidation(seeded ...string) Option {
	return func(r *Runner) {
		r.validate = true
		r.seeded = seeded
	}
}
