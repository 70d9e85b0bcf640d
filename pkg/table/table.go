package table

import (
	"reflect"

	"github.com/pkg/errors"
)

// Table is an ordered collection of named columns of equal length.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New builds a table from columns. All columns must have the same length and
// distinct names.
func New(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if col == nil {
			return nil, errors.Errorf("column %d is nil", i)
		}
		if _, ok := t.index[col.name]; ok {
			return nil, errors.Wrapf(ErrDuplicateColumn, "%q", col.name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, expected %d", col.name, col.Len(), t.rows)
		}

		t.index[col.name] = len(t.columns)
		t.columns = append(t.columns, col)
	}

	return t, nil
}

// FromRecords builds a table of string columns from a header and its rows.
func FromRecords(header []string, records [][]string) (*Table, error) {
	cols := make([]*Column, len(header))
	for j, name := range header {
		cols[j] = &Column{name: name, kind: String, values: make([]any, len(records))}
	}

	for i, record := range records {
		if len(record) != len(header) {
			return nil, errors.Wrapf(ErrLengthMismatch, "record %d has %d fields, expected %d", i, len(record), len(header))
		}
		for j, field := range record {
			cols[j].values[i] = field
		}
	}

	return New(cols...)
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) NumCols() int { return len(t.columns) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.name
	}

	return names
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]

	return ok
}

// Column returns the column named name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
	}

	return t.columns[i], nil
}

// Row returns a view on row i.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.rows {
		return Row{}, errors.Wrapf(ErrRowOutOfRange, "row %d of %d", i, t.rows)
	}

	return Row{table: t, idx: i}, nil
}

// Each calls fn for every row in order and stops on the first error.
func (t *Table) Each(fn func(Row) error) error {
	for i := 0; i < t.rows; i++ {
		err := fn(Row{table: t, idx: i})
		if err != nil {
			return err
		}
	}

	return nil
}

// Slice returns rows [from, to). Bounds are clamped to the table.
func (t *Table) Slice(from, to int) *Table {
	from = clamp(from, 0, t.rows)
	to = clamp(to, from, t.rows)

	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}

	return t.take(idx)
}

// Filter returns the rows for which pred is true, in their original order.
func (t *Table) Filter(pred Predicate) (*Table, error) {
	var idx []int

	err := t.Each(func(r Row) error {
		keep, err := pred(r)
		if err != nil {
			return errors.Wrapf(err, "row %d", r.idx)
		}
		if keep {
			idx = append(idx, r.idx)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to filter table")
	}

	return t.take(idx), nil
}

// AsType returns a copy of the table with the listed columns cast to new kinds.
// Columns not listed keep their kind.
func (t *Table) AsType(kinds map[string]Kind) (*Table, error) {
	for name := range kinds {
		if !t.HasColumn(name) {
			return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
		}
	}

	cols := make([]*Column, len(t.columns))
	for i, col := range t.columns {
		kind, ok := kinds[col.name]
		if !ok {
			cols[i] = col.take(allRows(t.rows))

			continue
		}

		cast, err := col.cast(kind)
		if err != nil {
			return nil, errors.Wrap(err, "unable to set column type")
		}
		cols[i] = cast
	}

	return New(cols...)
}

// Concat appends the rows of others after the rows of t. Every table must have
// the same column names and kinds, in the same order.
func (t *Table) Concat(others ...*Table) (*Table, error) {
	total := t.rows
	for i, o := range others {
		if !t.sameSchema(o) {
			return nil, errors.Wrapf(ErrSchemaMismatch, "table %d", i+1)
		}
		total += o.rows
	}

	cols := make([]*Column, len(t.columns))
	for j, col := range t.columns {
		values := make([]any, 0, total)
		values = append(values, col.values...)
		for _, o := range others {
			values = append(values, o.columns[j].values...)
		}
		cols[j] = &Column{name: col.name, kind: col.kind, values: values}
	}

	return New(cols...)
}

// Equal reports whether both tables have the same schema and values.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.sameSchema(o) || t.rows != o.rows {
		return false
	}

	for j, col := range t.columns {
		if !reflect.DeepEqual(col.values, o.columns[j].values) {
			return false
		}
	}

	return true
}

// Records renders the table as a header and string rows.
func (t *Table) Records() ([]string, [][]string) {
	records := make([][]string, t.rows)
	for i := range records {
		record := make([]string, len(t.columns))
		for j, col := range t.columns {
			record[j] = Format(col.values[i])
		}
		records[i] = record
	}

	return t.ColumnNames(), records
}

func (t *Table) sameSchema(o *Table) bool {
	if o == nil || len(t.columns) != len(o.columns) {
		return false
	}

	for j, col := range t.columns {
		if col.name != o.columns[j].name || col.kind != o.columns[j].kind {
			return false
		}
	}

	return true
}

func (t *Table) take(idx []int) *Table {
	cols := make([]*Column, len(t.columns))
	index := make(map[string]int, len(t.columns))
	for j, col := range t.columns {
		cols[j] = col.take(idx)
		index[col.name] = j
	}

	return &Table{columns: cols, index: index, rows: len(idx)}
}

func allRows(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	return idx
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
