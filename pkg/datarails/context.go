package datarails

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-datarails/internal/store"
)

// Context is the parameter bag shared by every step of a run. It is seeded with
// configuration fields and can be extended by any step through Put.
//
// Context is not safe for concurrent use.
type Context struct {
	values *store.Ordered[any]
}

// NewContext creates a Context holding fields. Fields are inserted in sorted key
// order so that Keys is deterministic.
func NewContext(fields map[string]any) *Context {
	c := &Context{
		values: store.NewOrdered[any](),
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c.values.Put(k, fields[k])
	}

	return c
}

// Put stores value under key, replacing any previous value.
func (c *Context) Put(key string, value any) {
	c.values.Put(key, value)
}

// Get returns the value stored under key. It fails with ErrNotFound if the key
// was never set.
func (c *Context) Get(key string) (any, error) {
	v, ok := c.values.Get(key)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "context key %q", key)
	}

	return v, nil
}

func (c *Context) Has(key string) bool {
	return c.values.Has(key)
}

// Keys returns the keys in insertion order.
func (c *Context) Keys() []string {
	return c.values.Keys()
}

// GetString returns the value under key as a string. Only string values and
// fmt.Stringer implementations are accepted.
func (c *Context) GetString(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}

	switch val := v.(type) {
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", mismatch(key, v, "string")
	}
}

// GetFloat64 returns the value under key as a float64. Any Go number is accepted,
// as is a string holding one.
func (c *Context) GetFloat64(key string) (float64, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}

	f, ok := toFloat64(v)
	if !ok {
		return 0, mismatch(key, v, "float64")
	}

	return f, nil
}

// GetInt returns the value under key as an int. Floats are accepted only when
// they hold a whole number.
func (c *Context) GetInt(key string) (int, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}

	f, ok := toFloat64(v)
	if !ok || f != math.Trunc(f) {
		return 0, mismatch(key, v, "int")
	}

	return int(f), nil
}

// GetStrings returns the value under key as a list of strings.
func (c *Context) GetStrings(key string) ([]string, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)

		return out, nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, mismatch(key, v, "[]string")
			}
			out[i] = s
		}

		return out, nil
	default:
		return nil, mismatch(key, v, "[]string")
	}
}

func mismatch(key string, v any, expected string) error {
	return errors.Wrapf(ErrTypeMismatch, "context key %q holds %T, expected %s", key, v, expected)
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}
