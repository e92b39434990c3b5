// Package errs holds the failure kinds shared by every ledger operation.
// Domain packages wrap one of these with %w so callers can classify an
// error with errors.Is without knowing the concrete sentinel.
package errs

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// Kind returns the taxonomy error wrapped by err, or nil when err does not
// belong to the taxonomy (infrastructure failures, for instance).
func Kind(err error) error {
	for _, k := range []error{ErrUnauthorized, ErrNotFound, ErrInvalidState, ErrInvalidArgument, ErrCapacityExceeded} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Label is the short name used for metrics and logs.
func Label(err error) string {
	if err == nil {
		return "ok"
	}
	switch Kind(err) {
	case ErrUnauthorized:
		return "unauthorized"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidState:
		return "invalid_state"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrCapacityExceeded:
		return "capacity_exceeded"
	default:
		return "internal"
	}
}
