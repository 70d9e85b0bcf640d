package datarails_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-datarails/pkg/datarails"
)

// declaredStep reads and writes fixed datasets.
type declaredStep struct {
	datarails.Base
	reads, writes []string
}

func (s *declaredStep) Actions() []datarails.Action {
	return []datarails.Action{{Name: "noop", Fn: func(context.Context) error { return nil }}}
}

func (s *declaredStep) Datasets() (reads, writes []string) {
	return s.reads, s.writes
}

func declared(name string, reads, writes []string) datarails.Definition {
	return datarails.Definition{
		Name: name,
		New: func() datarails.Step {
			return &declaredStep{reads: reads, writes: writes}
		},
	}
}

func TestValidateOK(t *testing.T) {
	t.Parallel()

	err := datarails.Validate([]datarails.Definition{
		declared("load", nil, []string{"cars"}),
		declared("format", []string{"cars"}, []string{"cars"}),
		declared("filter", []string{"cars"}, []string{"heavy"}),
		recordingStep(t, &recorder{}, "undeclared", "a1"),
		declared("save", []string{"heavy"}, nil),
	})
	assert.NoError(t, err)
}

func TestValidateReadBeforeWrite(t *testing.T) {
	t.Parallel()

	err := datarails.Validate([]datarails.Definition{
		declared("filter", []string{"cars"}, []string{"heavy"}),
		declared("load", nil, []string{"cars"}),
		declared("format", []string{"raw"}, []string{"raw"}),
	})
	require.ErrorIs(t, err, datarails.ErrConfiguration)
	assert.Contains(t, err.Error(), `step "filter": reads dataset "cars" before any step writes it`)
	assert.Contains(t, err.Error(), `step "format": reads dataset "raw" before any step writes it`)
}

func TestValidateUndeclaredWriter(t *testing.T) {
	t.Parallel()

	seed := datarails.Funcs("seed", datarails.FuncAction{
		Name: "put_cars",
		Fn: func(_ context.Context, dbx *datarails.DataBox, _ *datarails.Context) error {
			dbx.Put("cars", newTable(t, 1500, 2500))

			return nil
		},
	})
	defs := []datarails.Definition{
		declared("load", nil, []string{"raw"}),
		seed,
		declared("format", []string{"cars"}, []string{"cars"}),
		declared("filter", []string{"heavy"}, nil),
	}

	require.NoError(t, datarails.Validate(defs))

	runner, err := datarails.New(defs[:3], datarails.WithValidation())
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	// reads before the first undeclared step are still checked
	err = datarails.Validate([]datarails.Definition{
		declared("format", []string{"cars"}, []string{"cars"}),
		seed,
	})
	assert.ErrorContains(t, err, `step "format": reads dataset "cars" before any step writes it`)
}

func TestValidateRepeatedStep(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	defs := []datarails.Definition{
		declared("load", nil, []string{"cars"}),
		recordingStep(t, rec, "inc", "a1"),
		recordingStep(t, rec, "inc", "a1"),
	}
	require.NoError(t, datarails.Validate(defs))

	runner, err := datarails.New(defs, datarails.WithValidation())
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, []string{"inc.a1", "inc.a1"}, rec.all())

	// a repeated reader is satisfied by a writer placed between its occurrences
	err = datarails.Validate([]datarails.Definition{
		declared("format", []string{"cars"}, []string{"cars"}),
		declared("load", nil, []string{"cars"}),
		declared("format", []string{"cars"}, []string{"cars"}),
	})
	require.ErrorIs(t, err, datarails.ErrConfiguration)
	assert.Equal(t, `invalid configuration: step "format": reads dataset "cars" before any step writes it`, err.Error())
}

func TestRunValidationFailureClearsDataBox(t *testing.T) {
	t.Parallel()

	var reads []string
	runner, err := datarails.New([]datarails.Definition{{
		Name: "filter",
		New: func() datarails.Step {
			return &declaredStep{reads: reads}
		},
	}}, datarails.WithValidation())
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background()))
	require.NotNil(t, runner.DataBox())

	reads = []string{"cars"}
	err = runner.Run(context.Background())
	require.ErrorIs(t, err, datarails.ErrConfiguration)
	assert.Nil(t, runner.DataBox())
	assert.Equal(t, datarails.Failed, runner.State())
}

func TestValidateSeeded(t *testing.T) {
	t.Parallel()

	err := datarails.Validate([]datarails.Definition{
		declared("filter", []string{"cars"}, []string{"heavy"}),
	}, "cars")
	assert.NoError(t, err)
}

func TestValidateStructure(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *datarails.DataBox, *datarails.Context) error { return nil }

	tcs := map[string]struct {
		defs     []datarails.Definition
		contains string
	}{
		"empty": {
			defs:     nil,
			contains: "no steps",
		},
		"no name": {
			defs:     []datarails.Definition{datarails.Funcs("", datarails.FuncAction{Name: "a", Fn: noop})},
			contains: "step 0 has no name",
		},
		"no actions": {
			defs:     []datarails.Definition{datarails.Funcs("s")},
			contains: `step "s": no actions`,
		},
		"duplicate action": {
			defs: []datarails.Definition{
				datarails.Funcs("s", datarails.FuncAction{Name: "a", Fn: noop}, datarails.FuncAction{Name: "a", Fn: noop}),
			},
			contains: `duplicate action "a"`,
		},
		"unnamed action": {
			defs:     []datarails.Definition{datarails.Funcs("s", datarails.FuncAction{Fn: noop})},
			contains: "action 0 has no name",
		},
		"nil action": {
			defs:     []datarails.Definition{datarails.Funcs("s", datarails.FuncAction{Name: "a"})},
			contains: `action "a" has no function`,
		},
		"nil constructor": {
			defs:     []datarails.Definition{{Name: "s"}},
			contains: "constructor must be set",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := datarails.Validate(tc.defs)
			require.ErrorIs(t, err, datarails.ErrConfiguration)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestRunWithValidation(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	runner, err := datarails.New([]datarails.Definition{
		declared("filter", []string{"cars"}, nil),
		recordingStep(t, rec, "S1", "a1"),
	}, datarails.WithValidation())
	require.NoError(t, err)

	err = runner.Run(context.Background())
	assert.ErrorIs(t, err, datarails.ErrConfiguration)
	// nothing runs when validation fails
	assert.Empty(t, rec.all())

	runner, err = datarails.New([]datarails.Definition{
		declared("filter", []string{"cars"}, nil),
		recordingStep(t, rec, "S1", "a1"),
	}, datarails.WithValidation("cars"))
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, []string{"S1.a1"}, rec.all())
}

func TestLineage(t *testing.T) {
	t.Parallel()

	g, err := datarails.Lineage([]datarails.Definition{
		declared("load", nil, []string{"cars"}),
		declared("filter", []string{"cars"}, []string{"heavy"}),
	})
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, 4, order)

	_, err = g.Edge(datarails.StepVertex("load"), datarails.DatasetVertex("cars"))
	require.NoError(t, err)
	_, err = g.Edge(datarails.DatasetVertex("cars"), datarails.StepVertex("filter"))
	require.NoError(t, err)
	_, err = g.Edge(datarails.StepVertex("filter"), datarails.DatasetVertex("heavy"))
	require.NoError(t, err)

	_, props, err := g.VertexWithProperties(datarails.DatasetVertex("heavy"))
	require.NoError(t, err)
	assert.Equal(t, "dataset", props.Attributes["kind"])
}
