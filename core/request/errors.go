package request

import (
	"errors"
	"fmt"

	"github.com/goto/intake/domain"
)

var (
	ErrEmptyDocumentID    = errors.New("request document id is required")
	ErrRequestNotFound    = errors.New("request not found")
	ErrTransitionInFlight = errors.New("another transition is still in flight for this request")
	ErrRemoteTimeout      = errors.New("remote store did not answer in time")

	ErrValidation        = errors.New("validation error")
	ErrRemoteCall        = errors.New("remote call failed")
	ErrInvalidTransition = errors.New("invalid transition")
)

// ValidationError is reported before any remote call is attempted.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// RemoteCallFailure wraps any error returned by the remote store. The local cache is
// never touched when one is returned.
type RemoteCallFailure struct {
	Op         string
	DocumentID string
	Err        error
}

func (e RemoteCallFailure) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("%s requests: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s request %q: %v", e.Op, e.DocumentID, e.Err)
}

func (e RemoteCallFailure) Is(target error) bool {
	return target == ErrRemoteCall
}

func (e RemoteCallFailure) Unwrap() error {
	return e.Err
}

// InvalidTransitionError rejects a workflow step before any remote call.
type InvalidTransitionError struct {
	DocumentID string
	From       domain.RequestStatus
	Action     string
	Reason     string
}

func (e InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("can't %s request %q with status %q", e.Action, e.DocumentID, e.From.Label())
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
