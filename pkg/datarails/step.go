package datarails

import "context"

// Action is a single unit of work of a step.
type Action struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Step exposes the ordered actions of a pipeline stage. Implementations embed
// Base, which gives the actions access to the DataBox and Context of the run.
type Step interface {
	// Actions returns the actions in execution order.
	Actions() []Action

	bind(dbx *DataBox, ctx *Context) error
}

// DatasetDeclarer is implemented by steps that declare the datasets they read
// and write, so that Validate can check the pipeline before it runs.
type DatasetDeclarer interface {
	Datasets() (reads, writes []string)
}

// Base binds a step instance to the shared state of a run. The binding happens
// once, before the first action runs, and cannot be changed afterwards.
type Base struct {
	dbx *DataBox
	ctx *Context
}

func (b *Base) bind(dbx *DataBox, ctx *Context) error {
	if b.dbx != nil {
		return ErrAlreadyBound
	}

	b.dbx = dbx
	b.ctx = ctx

	return nil
}

// DBX returns the DataBox of the run.
func (b *Base) DBX() *DataBox { return b.dbx }

// Ctx returns the Context of the run.
func (b *Base) Ctx() *Context { return b.ctx }

// Definition is the template a runner instantiates a step from.
type Definition struct {
	Name string
	New  func() Step
}

// StepOf defines a step from a struct type embedding Base. Each run gets a fresh
// zero value of T.
//
//	type LoadCars struct{ datarails.Base }
//	def := datarails.StepOf[LoadCars]("load_cars")
func StepOf[T any, PT interface {
	*T
	Step
}](name string) Definition {
	return Definition{
		Name: name,
		New: func() Step {
			return PT(new(T))
		},
	}
}

// FuncAction is an action written as a plain function of the shared state.
type FuncAction struct {
	Name string
	Fn   func(ctx context.Context, dbx *DataBox, c *Context) error
}

// Funcs defines a step whose actions are plain functions.
func Funcs(name string, actions ...FuncAction) Definition {
	return Definition{
		Name: name,
		New: func() Step {
			return &funcStep{actions: actions}
		},
	}
}

type funcStep struct {
	Base
	actions []FuncAction
}

func (s *funcStep) Actions() []Action {
	out := make([]Action, len(s.actions))
	for i, a := range s.actions {
		a := a
		out[i] = Action{Name: a.Name}
		if a.Fn != nil {
			out[i].Fn = func(ctx context.Context) error {
				return a.Fn(ctx, s.DBX(), s.Ctx())
			}
		}
	}

	return out
}
