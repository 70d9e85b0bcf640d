package table

import "github.com/pkg/errors"

// Row is a read-only view on one row of a Table.
type Row struct {
	table *Table
	idx   int
}

// Index returns the position of the row in its table.
func (r Row) Index() int { return r.idx }

// Value returns the value of column name, nil when missing.
func (r Row) Value(name string) (any, error) {
	col, err := r.table.Column(name)
	if err != nil {
		return nil, err
	}

	return col.values[r.idx], nil
}

// Float64 returns the value of a numeric column. The boolean result is false when
// the value is missing.
func (r Row) Float64(name string) (float64, bool, error) {
	col, err := r.table.Column(name)
	if err != nil {
		return 0, false, err
	}

	return col.Float64(r.idx)
}

// Predicate decides whether a row is kept by Filter.
type Predicate func(Row) (bool, error)

// GreaterThan keeps rows whose numeric column is strictly greater than threshold.
// Missing values are never kept.
func GreaterThan(column string, threshold float64) Predicate {
	return func(r Row) (bool, error) {
		v, ok, err := r.Float64(column)
		if err != nil {
			return false, errors.Wrap(err, "unable to compare")
		}

		return ok && v > threshold, nil
	}
}
