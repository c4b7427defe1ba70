package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrompt is returned by the request builder for a blank prompt.
	ErrInvalidPrompt = errors.New("invalid prompt: empty after trimming")
	// ErrBusy is returned when a request is started while another is outstanding.
	ErrBusy = errors.New("a request is already in flight")
)

// TransportErrorKind classifies transport failures.
type TransportErrorKind string

const (
	TransportNetwork  TransportErrorKind = "network"
	TransportStatus   TransportErrorKind = "status"
	TransportBody     TransportErrorKind = "body"
	TransportTimeout  TransportErrorKind = "timeout"
	TransportCanceled TransportErrorKind = "canceled"
)

// TransportError is the only failure that crosses the orchestrator boundary.
type TransportError struct {
	Kind       TransportErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Kind == TransportStatus && e.Message != "":
		return fmt.Sprintf("transport %s: HTTP %d: %s", e.Kind, e.StatusCode, e.Message)
	case e.Kind == TransportStatus:
		return fmt.Sprintf("transport %s: HTTP %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("transport %s: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("transport %s", e.Kind)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsTransportError returns err as a *TransportError, wrapping foreign errors
// as network failures. It returns nil for a nil error.
func AsTransportError(err error) *TransportError {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	return &TransportError{Kind: TransportNetwork, Err: err}
}

// IsTransportError reports whether err carries a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
