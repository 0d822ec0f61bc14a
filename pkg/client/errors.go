package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when mutually exclusive flags are
	// combined, or a required flag is missing.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnimplemented is returned by commands that are recognized but
	// intentionally not implemented yet.
	ErrUnimplemented = errors.New("not implemented")
)

// TransportError wraps any failure to complete an exchange with the
// daemon: connection lost, malformed reply, or a remote-side rejection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
