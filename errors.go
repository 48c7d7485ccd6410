package ddns

import (
	"errors"
	"fmt"
)

// ErrUpdateRejected matches any error returned when the DNS provider
// completed the update request but answered with a non-success status.
// Use errors.Is to test for it.
var ErrUpdateRejected = errors.New("provider rejected the update")

// UpdateRejectedError carries the HTTP status the provider answered with.
// The response body is never inspected; the status code alone decides.
type UpdateRejectedError struct {
	StatusCode int
}

func (e *UpdateRejectedError) Error() string {
	return fmt.Sprintf("provider rejected the update with status %d", e.StatusCode)
}

func (e *UpdateRejectedError) Is(target error) bool {
	return target == ErrUpdateRejected
}

// ConfigError reports a config file that is missing, malformed,
// incomplete, or unwritable.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NetworkError reports an HTTP call that could not be completed at all,
// as opposed to one that completed with an unwanted status.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
