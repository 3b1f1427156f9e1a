package assign

import (
	"errors"
	"fmt"
)

// ErrInfeasible indicates the engine could not find any assignment satisfying
// the hard constraints within its time bound.
var ErrInfeasible = errors.New("no feasible assignment")

// ConfigError reports a structural precondition the solver cannot satisfy,
// such as a missing history for a follow-up leg or an unknown frozen role.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
