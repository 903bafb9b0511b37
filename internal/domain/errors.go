package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoShowSelected    = errors.New("no show selected")
	ErrNoSeatsSelected   = errors.New("no seats selected")
	ErrNoBookingToResume = errors.New("no booking to resume")
	ErrBookingInFlight   = errors.New("a booking attempt is already in flight")
	ErrShowMismatch      = errors.New("show does not match the current session")
	ErrUnknownTheatre    = errors.New("theatre not present in the fetched theatre list")
	ErrUnknownScreen     = errors.New("screen does not belong to the selected theatre")
	ErrUnknownShow       = errors.New("show does not match the selected movie and screen")
	ErrStaleLayout       = errors.New("seat layout is stale, fetch it again before retrying")
	ErrSessionReset      = errors.New("session was reset while the booking attempt was in flight")
)

// ErrorKind classifies gateway failures. The session surfaces only the
// message string; the kind is kept so callers can pick a status code and the
// flow can tell a seat conflict from a transient failure.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindNetworkFailure    ErrorKind = "network_failure"
	KindServerFailure     ErrorKind = "server_failure"
	KindValidationFailure ErrorKind = "validation_failure"
)

type GatewayError struct {
	Kind    ErrorKind
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

func NewGatewayError(kind ErrorKind, format string, args ...any) *GatewayError {
	return &GatewayError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of err if it is a GatewayError, otherwise
// KindServerFailure.
func KindOf(err error) ErrorKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}

	return KindServerFailure
}
