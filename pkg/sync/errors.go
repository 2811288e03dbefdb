package sync

import (
	"errors"
	"fmt"
)

// ErrOffline marks failures where no response was obtained at all. Transport
// adapters wrap their connection-level errors so callers can match with
// errors.Is.
var ErrOffline = errors.New("no transport connectivity")

// TransportError wraps an error raised before any response was received.
// It matches ErrOffline under errors.Is.
type TransportError struct {
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("transport failure (request %s): %v", e.RequestID, e.Err)
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrOffline }

// EnvelopeError marks a response that was received but does not match the
// expected {success, message, data} envelope or its payload schema.
type EnvelopeError struct {
	Reason string
	Err    error
}

func (e *EnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response envelope: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid response envelope: %s", e.Reason)
}

func (e *EnvelopeError) Unwrap() error { return e.Err }

// RemoteError marks an envelope that explicitly reports success=false.
// Message carries the server-supplied text verbatim when present.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "remote reported failure"
	}
	return e.Message
}
