package table

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind is the type of the values held by a column.
type Kind uint8

const (
	String Kind = iota
	Int64
	Float64
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseKind maps a type name to a Kind. The pandas spellings are accepted.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "object":
		return String, nil
	case "int64", "int":
		return Int64, nil
	case "float64", "float":
		return Float64, nil
	case "bool", "boolean":
		return Bool, nil
	default:
		return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
	}
}

// accepts reports whether v can be stored in a column of kind k.
func (k Kind) accepts(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case string:
		return k == String
	case int64:
		return k == Int64
	case float64:
		return k == Float64
	case bool:
		return k == Bool
	default:
		return false
	}
}
