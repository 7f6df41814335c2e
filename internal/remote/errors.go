package remote

import (
	"errors"
	"fmt"
)

var (
	ErrBackendUnreachable = errors.New("backend_unreachable")
	ErrBackendRejected    = errors.New("backend_rejected")
	ErrMalformedResponse  = errors.New("malformed_response")

	ErrRemoteUnavailable = errors.New("remote_unavailable")
	ErrInvalidUser       = errors.New("invalid_user")
)

// Error is the typed failure returned by the remote clients. Kind is one of
// the sentinels above and is matched with errors.Is.
type Error struct {
	Op     string
	Kind   error
	Status int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Reason extracts the upstream-provided reason from err, if any.
func Reason(err error) string {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Reason
	}
	return ""
}
