package datarails_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-datarails/pkg/datarails"
	"github.com/askiada/go-datarails/pkg/table"
)

func newTable(t *testing.T, values ...float64) *table.Table {
	t.Helper()

	tbl, err := table.New(table.Float64Column("Weight", values...))
	require.NoError(t, err)

	return tbl
}

func TestDataBoxRoundTrip(t *testing.T) {
	t.Parallel()

	dbx := datarails.NewDataBox()
	tbl := newTable(t, 1, 2, 3)
	dbx.Put("cars", tbl)

	got, err := dbx.Get("cars")
	require.NoError(t, err)
	assert.Same(t, tbl, got)
	assert.True(t, dbx.Has("cars"))
}

func TestDataBoxNotFound(t *testing.T) {
	t.Parallel()

	dbx := datarails.NewDataBox()
	for _, name := range []string{"cars", "", "cars_over_2000"} {
		_, err := dbx.Get(name)
		assert.ErrorIs(t, err, datarails.ErrNotFound, name)

		_, ok := dbx.Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestDataBoxLastWriteWins(t *testing.T) {
	t.Parallel()

	dbx := datarails.NewDataBox()
	first := newTable(t, 1)
	second := newTable(t, 2)
	dbx.Put("cars", first)
	dbx.Put("cars", second)

	got, err := dbx.Get("cars")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, dbx.Len())
}

func TestDataBoxNames(t *testing.T) {
	t.Parallel()

	dbx := datarails.NewDataBox()
	dbx.Put("raw", newTable(t))
	dbx.Put("clean", newTable(t))
	dbx.Put("raw", newTable(t))

	assert.Equal(t, []string{"raw", "clean"}, dbx.Names())
}
