package model

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration     = errors.New("invalid stack configuration")
	ErrBuildNotFound     = errors.New("build not found")
	ErrInstanceNotFound  = errors.New("instance not found")
	ErrNoPublicIPAddress = errors.New("instance has no public IP address")
)

// ConfigurationError reports a violated configuration invariant.
// It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// NewConfigurationError returns a ConfigurationError for field.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
