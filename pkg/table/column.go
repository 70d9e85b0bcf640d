package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column is a named sequence of values of a single Kind.
type Column struct {
	name   string
	kind   Kind
	values []any
}

// NewColumn creates a column and checks that every value matches kind.
func NewColumn(name string, kind Kind, values ...any) (*Column, error) {
	for i, v := range values {
		if !kind.accepts(v) {
			return nil, errors.Wrapf(ErrKindMismatch, "column %q row %d: %T is not %s", name, i, v, kind)
		}
	}

	vals := make([]any, len(values))
	copy(vals, values)

	return &Column{name: name, kind: kind, values: vals}, nil
}

func StringColumn(name string, values ...string) *Column {
	col := &Column{name: name, kind: String, values: make([]any, len(values))}
	for i, v := range values {
		col.values[i] = v
	}

	return col
}

func Int64Column(name string, values ...int64) *Column {
	col := &Column{name: name, kind: Int64, values: make([]any, len(values))}
	for i, v := range values {
		col.values[i] = v
	}

	return col
}

func Float64Column(name string, values ...float64) *Column {
	col := &Column{name: name, kind: Float64, values: make([]any, len(values))}
	for i, v := range values {
		col.values[i] = v
	}

	return col
}

func BoolColumn(name string, values ...bool) *Column {
	col := &Column{name: name, kind: Bool, values: make([]any, len(values))}
	for i, v := range values {
		col.values[i] = v
	}

	return col
}

func (c *Column) Name() string { return c.name }

func (c *Column) Kind() Kind { return c.kind }

func (c *Column) Len() int { return len(c.values) }

// Value returns the value at row i, nil when missing.
func (c *Column) Value(i int) (any, error) {
	if i < 0 || i >= len(c.values) {
		return nil, errors.Wrapf(ErrRowOutOfRange, "column %q row %d", c.name, i)
	}

	return c.values[i], nil
}

// Values returns a copy of the column values.
func (c *Column) Values() []any {
	vals := make([]any, len(c.values))
	copy(vals, c.values)

	return vals
}

// Float64 returns row i as a float64. Integer columns are widened. The boolean
// result is false when the value is missing.
func (c *Column) Float64(i int) (float64, bool, error) {
	v, err := c.Value(i)
	if err != nil {
		return 0, false, err
	}

	switch val := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return val, true, nil
	case int64:
		return float64(val), true, nil
	default:
		return 0, false, errors.Wrapf(ErrKindMismatch, "column %q is %s, not numeric", c.name, c.kind)
	}
}

func (c *Column) take(idx []int) *Column {
	out := &Column{name: c.name, kind: c.kind, values: make([]any, len(idx))}
	for i, j := range idx {
		out.values[i] = c.values[j]
	}

	return out
}

func (c *Column) cast(kind Kind) (*Column, error) {
	out := &Column{name: c.name, kind: kind, values: make([]any, len(c.values))}
	for i, v := range c.values {
		cv, err := castValue(v, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q row %d", c.name, i)
		}
		out.values[i] = cv
	}

	return out, nil
}

func castValue(v any, kind Kind) (any, error) {
	switch val := v.(type) {
	case nil:
		if kind == Int64 {
			return nil, errors.Wrap(ErrCast, "missing value to int64")
		}

		return nil, nil
	case string:
		return castString(val, kind)
	case int64:
		switch kind {
		case String:
			return strconv.FormatInt(val, 10), nil
		case Int64:
			return val, nil
		case Float64:
			return float64(val), nil
		case Bool:
			return val != 0, nil
		}
	case float64:
		switch kind {
		case String:
			return formatFloat(val), nil
		case Int64:
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, errors.Wrapf(ErrCast, "%v to int64", val)
			}

			return int64(val), nil
		case Float64:
			return val, nil
		case Bool:
			return val != 0, nil
		}
	case bool:
		switch kind {
		case String:
			return strconv.FormatBool(val), nil
		case Int64:
			if val {
				return int64(1), nil
			}

			return int64(0), nil
		case Float64:
			if val {
				return 1.0, nil
			}

			return 0.0, nil
		case Bool:
			return val, nil
		}
	}

	return nil, errors.Wrapf(ErrCast, "%T to %s", v, kind)
}

func castString(val string, kind Kind) (any, error) {
	trimmed := strings.TrimSpace(val)

	switch kind {
	case String:
		return val, nil
	case Int64:
		if trimmed == "" {
			return nil, errors.Wrap(ErrCast, "missing value to int64")
		}

		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrCast, "%q to int64", val)
		}

		return n, nil
	case Float64:
		if trimmed == "" {
			return nil, nil
		}

		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrCast, "%q to float64", val)
		}

		return f, nil
	case Bool:
		if trimmed == "" {
			return nil, nil
		}

		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, errors.Wrapf(ErrCast, "%q to bool", val)
		}

		return b, nil
	}

	return nil, errors.Wrapf(ErrCast, "string to %s", kind)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Format renders v the way it is written to delimited files.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
