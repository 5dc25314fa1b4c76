// Package services contains application services for the EduPilot client.
// Each service pairs the REST client with the local state it owns (the
// session or a synced collection) and runs local precondition checks
// before any request is sent.
package services

import (
	"errors"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/progress"
	"github.com/edupilot/edupilot/internal/client/validation"
)

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("please log in first")

// NetworkMessage is shown for transport failures.
const NetworkMessage = "Network error. Please check your connection and try again."

// Message turns err into the one line shown to the user. Local
// precondition failures and server-reported client errors are shown
// verbatim; anything else is replaced by fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, progress.ErrToggleLocked) || errors.Is(err, ErrNotAuthenticated) {
		return capitalize(rootText(err))
	}
	if errors.Is(err, client.ErrUnavailable) {
		return NetworkMessage
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// rootText returns the text of the innermost wrapped error.
func rootText(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
