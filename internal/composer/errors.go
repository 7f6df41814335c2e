package composer

import (
	"errors"
	"fmt"

	"github.com/Juicern/remagik/internal/remote"
)

var (
	ErrEmptyDraft        = errors.New("empty_draft")
	ErrBusy              = errors.New("rewrite_in_progress")
	ErrUsageLimitReached = errors.New("usage_limit_reached")
	ErrNoPreviousRequest = errors.New("no_previous_request")
	ErrNotSignedIn       = errors.New("not_signed_in")
	ErrTonesUnavailable  = errors.New("tones_unavailable")
	ErrToneSaveFailed    = errors.New("tone_save_failed")
)

// Message turns an error from the composer into the text shown to the user.
func Message(err error) string {
	reason := remote.Reason(err)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDraft):
		return "Write something to rewrite first."
	case errors.Is(err, ErrBusy):
		return "A rewrite is already in progress."
	case errors.Is(err, ErrUsageLimitReached):
		return "You've used your free transformations! Sign in to continue with unlimited access."
	case errors.Is(err, ErrNoPreviousRequest):
		return "Nothing to regenerate yet."
	case errors.Is(err, ErrNotSignedIn):
		return "Sign in to save tone settings."
	case errors.Is(err, remote.ErrBackendUnreachable):
		return "Couldn't reach the rewrite service. Check your connection and try again."
	case errors.Is(err, remote.ErrBackendRejected):
		if reason != "" {
			return "Failed to rewrite text: " + reason
		}
		return "Failed to rewrite text."
	case errors.Is(err, remote.ErrMalformedResponse):
		return "The rewrite service returned an unexpected response. Try regenerating."
	case errors.Is(err, ErrToneSaveFailed):
		if reason != "" {
			return "Failed to save tone: " + reason
		}
		return "Failed to save tone."
	case errors.Is(err, remote.ErrInvalidUser):
		return "Sign in to use your saved tones."
	case errors.Is(err, ErrTonesUnavailable), errors.Is(err, remote.ErrRemoteUnavailable):
		if reason != "" {
			return fmt.Sprintf("Tone settings are unavailable: %s", reason)
		}
		return "Tone settings are unavailable right now."
	default:
		return "Something went wrong: " + err.Error()
	}
}
