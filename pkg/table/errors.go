package table

import "github.com/pkg/errors"

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrKindMismatch    = errors.New("value does not match column kind")
	ErrUnknownKind     = errors.New("unknown kind")
	ErrCast            = errors.New("unable to cast value")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrRowOutOfRange   = errors.New("row out of range")
)
