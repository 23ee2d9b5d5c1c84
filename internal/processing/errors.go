package processing

import (
	"errors"
	"fmt"

	"github.com/RMahshie/soundmax/internal/curve"
	"github.com/RMahshie/soundmax/internal/fetcher"
)

// ErrorKind classifies why a correction could not be produced
type ErrorKind string

const (
	KindInvalidLocator   ErrorKind = "invalid_locator"
	KindNetworkFailure   ErrorKind = "network_failure"
	KindUndecodableBody  ErrorKind = "undecodable_body"
	KindDocumentNotFound ErrorKind = "document_not_found"
	KindMissingHeader    ErrorKind = "missing_header"
	KindNoSamples        ErrorKind = "no_samples"
)

// Error is the failure of a single correction request. No kind is retried
// by the service; callers retry by calling again.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns a human-readable description suitable for display
func (e *Error) Message() string {
	switch e.Kind {
	case KindInvalidLocator:
		return "Invalid URL"
	case KindNetworkFailure:
		var netErr *fetcher.NetworkError
		if errors.As(e.Err, &netErr) && netErr.Err != nil {
			return "Could not reach the EQ archive: " + netErr.Err.Error()
		}
		return "Could not reach the EQ archive"
	case KindUndecodableBody:
		return "Invalid response from server"
	case KindDocumentNotFound:
		return "EQ data not found for this headphone"
	case KindMissingHeader, KindNoSamples:
		return "Could not parse EQ data"
	default:
		return "Unknown error"
	}
}

// KindOf returns the kind of err when it is an *Error
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// classify maps a fetch or parse failure onto its kind
func classify(err error) *Error {
	kind := KindNetworkFailure
	switch {
	case errors.Is(err, fetcher.ErrDocumentNotFound):
		kind = KindDocumentNotFound
	case errors.Is(err, fetcher.ErrUndecodableBody):
		kind = KindUndecodableBody
	case errors.Is(err, curve.ErrMissingHeader):
		kind = KindMissingHeader
	case errors.Is(err, curve.ErrNoSamples):
		kind = KindNoSamples
	}
	return &Error{Kind: kind, Err: err}
}
