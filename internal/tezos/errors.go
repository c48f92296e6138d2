package tezos

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the node answers 404, usually because it lags behind the cluster.
var ErrNotFound = errors.New("tezos rpc: not found")

// UnreachableError is a connection-level failure: dial, TLS, timeout or reset.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("node %s unreachable: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// ApplicationError means the node answered, but not with something usable.
type ApplicationError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *ApplicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("node %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("node %s: HTTP %d: %s", e.URL, e.Status, e.Body)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err is a connection-level failure.
func IsUnreachable(err error) bool {
	var u *UnreachableError
	return errors.As(err, &u)
}
