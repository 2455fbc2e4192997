package wellnessapp

import (
	"errors"
	"fmt"
)

var (
	ErrNotSignedIn             = errors.New("not signed in")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

const (
	MessageNotSignedIn     = "not signed in"
	MessageProfileNotFound = "profile not found"
	MessageUnavailable     = "failed to calculate wellness score, try again later"
)

// Message converts an orchestration error into the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotSignedIn):
		return MessageNotSignedIn
	case errors.Is(err, ErrProfileNotFound):
		return MessageProfileNotFound
	default:
		return MessageUnavailable
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotSignedIn):
		return "not_signed_in"
	case errors.Is(err, ErrProfileNotFound):
		return "profile_not_found"
	case errors.Is(err, ErrCollaboratorUnavailable):
		return "collaborator_unavailable"
	default:
		return "cancelled"
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCollaboratorUnavailable, op, err)
}
