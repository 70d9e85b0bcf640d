// Package datarails provides a minimal runner for tabular-data pipelines.
//
// A pipeline is an ordered list of steps. Each step exposes an ordered list of
// actions, and every action works against two shared containers: a DataBox, which
// holds the tabular datasets by name, and a Context, which holds parameters and
// any non-tabular value steps want to hand to each other.
//
// The runner executes steps in list order and actions in declaration order, one at
// a time. A step instance is created right before its actions run and is bound to
// the DataBox and Context of the run. Steps never talk to each other directly:
// they agree on dataset names and context keys.
//
// The runner stops on the first error. The error returned by an action is handed
// back to the caller of Run unmodified, and the datasets written so far stay
// available through Runner.DataBox for inspection.
package datarails
