package tablefile_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-datarails/pkg/table"
	"github.com/askiada/go-datarails/pkg/tablefile"
)

const sample = "Car;Weight\nSTRING;DOUBLE\nFord Torino;3449\nHonda Civic;1795\n"

func TestRead(t *testing.T) {
	t.Parallel()

	tbl, err := tablefile.Read(strings.NewReader(sample), tablefile.WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"Car", "Weight"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.NumRows())

	weights, err := tbl.Column("Weight")
	require.NoError(t, err)
	assert.Equal(t, []any{"DOUBLE", "3449", "1795"}, weights.Values())
}

func TestReadEmpty(t *testing.T) {
	t.Parallel()

	_, err := tablefile.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, tablefile.ErrNoHeader)
}

func TestReadRaggedRows(t *testing.T) {
	t.Parallel()

	_, err := tablefile.Read(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tbl, err := table.New(
		table.StringColumn("Car", "Ford Torino"),
		table.Float64Column("Weight", 3449),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tablefile.Write(&buf, tbl, tablefile.WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, "Car;Weight\nFord Torino;3449\n", buf.String())
}

func TestWriteFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed", "out.csv")
	tbl, err := table.New(table.StringColumn("a", "1", "2"), table.StringColumn("b", "x", "y"))
	require.NoError(t, err)

	err = tablefile.WriteFile(path, tbl)
	require.NoError(t, err)

	got, err := tablefile.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(got))
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := tablefile.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := make([]string, 0, 5)
	for i, content := range []string{"x\n1\n", "x\n2\n", "x\n3\n", "x\n4\n", "x\n5\n"} {
		path := filepath.Join(dir, string(rune('a'+i))+".csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	tables, err := tablefile.ReadFiles(context.Background(), paths, tablefile.WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, tables, 5)

	for i, tbl := range tables {
		col, err := tbl.Column("x")
		require.NoError(t, err)
		assert.Equal(t, []any{string(rune('1' + i))}, col.Values())
	}
}

func TestReadFilesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte("x\n1\n"), 0o600))

	_, err := tablefile.ReadFiles(context.Background(), []string{good, filepath.Join(dir, "missing.csv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFilesCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tablefile.ReadFiles(ctx, []string{"a.csv"})
	assert.ErrorIs(t, err, context.Canceled)
}
