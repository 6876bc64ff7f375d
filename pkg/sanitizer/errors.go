package sanitizer

import "errors"

var (
	ErrInvalidConfig   = errors.New("sanitizer: invalid config")
	ErrPolicyViolation = errors.New("sanitizer: markup violates policy")
)

// ConfigError describes why a Config was rejected. It unwraps to
// ErrInvalidConfig.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return ErrInvalidConfig.Error() + ": " + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
