package datarails

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrConfiguration  = errors.New("invalid configuration")
	ErrAlreadyBound   = errors.New("step already bound")
	ErrAlreadyRunning = errors.New("runner already running")
)

// ConfigError reports a malformed step list.
type ConfigError struct {
	Step string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), e.Msg)
	}

	return fmt.Sprintf("%s: step %q: %s", ErrConfiguration.Error(), e.Step, e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(step, format string, args ...any) error {
	return &ConfigError{Step: step, Msg: fmt.Sprintf(format, args...)}
}

// joinConfigErrors folds several configuration errors into one.
func joinConfigErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = strings.TrimPrefix(err.Error(), ErrConfiguration.Error()+": ")
	}

	return &ConfigError{Msg: strings.Join(msgs, "; ")}
}
