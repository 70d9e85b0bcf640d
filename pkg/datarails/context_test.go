package datarails_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-datarails/pkg/datarails"
)

func TestContextFields(t *testing.T) {
	t.Parallel()

	c := datarails.NewContext(map[string]any{
		"weight_threshold": 1000,
		"data_dir":         "../data/",
		"processed_dir":    "../data/processed/",
	})

	dir, err := c.GetString("data_dir")
	require.NoError(t, err)
	assert.Equal(t, "../data/", dir)

	threshold, err := c.GetFloat64("weight_threshold")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, threshold, 0)

	assert.Equal(t, []string{"data_dir", "processed_dir", "weight_threshold"}, c.Keys())
}

func TestContextPutGet(t *testing.T) {
	t.Parallel()

	c := datarails.NewContext(nil)
	c.Put("df_name_to_save", "cars_over_1000")

	got, err := c.Get("df_name_to_save")
	require.NoError(t, err)
	assert.Equal(t, "cars_over_1000", got)

	c.Put("df_name_to_save", "cars_over_2000")
	name, err := c.GetString("df_name_to_save")
	require.NoError(t, err)
	assert.Equal(t, "cars_over_2000", name)
}

func TestContextNotFound(t *testing.T) {
	t.Parallel()

	c := datarails.NewContext(map[string]any{"a": 1})
	_, err := c.Get("b")
	assert.ErrorIs(t, err, datarails.ErrNotFound)
	assert.False(t, c.Has("b"))

	_, err = c.GetString("b")
	assert.ErrorIs(t, err, datarails.ErrNotFound)
	_, err = c.GetInt("b")
	assert.ErrorIs(t, err, datarails.ErrNotFound)
	_, err = c.GetFloat64("b")
	assert.ErrorIs(t, err, datarails.ErrNotFound)
	_, err = c.GetStrings("b")
	assert.ErrorIs(t, err, datarails.ErrNotFound)
}

func TestContextTypedAccessors(t *testing.T) {
	t.Parallel()

	c := datarails.NewContext(map[string]any{
		"int":      int64(7),
		"float":    7.5,
		"whole":    8.0,
		"text":     "12",
		"words":    []any{"a.csv", "b.csv"},
		"strings":  []string{"c.csv"},
		"mixed":    []any{"a.csv", 3},
		"notatext": 3,
	})

	n, err := c.GetInt("int")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = c.GetInt("whole")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = c.GetInt("float")
	assert.ErrorIs(t, err, datarails.ErrTypeMismatch)

	f, err := c.GetFloat64("text")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, f, 0)

	words, err := c.GetStrings("words")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, words)

	words, err = c.GetStrings("strings")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.csv"}, words)

	_, err = c.GetStrings("mixed")
	assert.ErrorIs(t, err, datarails.ErrTypeMismatch)

	_, err = c.GetString("notatext")
	assert.ErrorIs(t, err, datarails.ErrTypeMismatch)

	_, err = c.GetFloat64("words")
	assert.ErrorIs(t, err, datarails.ErrTypeMismatch)
}
