// Package faults maps raw failure signals from the sync boundary into the
// closed error taxonomy the rest of the tool speaks. Classification order
// matters: a transport failure must never be reported as a server error,
// because the two suggest different retry behavior to the user.
package faults

import (
	"errors"

	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

// Code is one of the closed set of failure codes.
type Code string

const (
	CodeFetchFailed     Code = "fetch_failed"
	CodeReorderFailed   Code = "reorder_failed"
	CodeInvalidResponse Code = "invalid_response"
	CodeServerError     Code = "server_error"
	CodeNetworkError    Code = "network_error"
	CodeValidationError Code = "validation_error"
	CodeCreationFailed  Code = "creation_failed"
	CodeUpdateFailed    Code = "update_failed"
	CodeDeleteFailed    Code = "delete_failed"
	CodeDuplicateFailed Code = "duplicate_failed"
)

// ClassifiedError is the only error shape that crosses the mutation
// controller boundary.
type ClassifiedError struct {
	Code    Code
	Message string
	Context map[string]string
}

func (e *ClassifiedError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// New builds a classified error directly, for preconditions that fail before
// any boundary call (validation_error and friends).
func New(code Code, message string) *ClassifiedError {
	return &ClassifiedError{Code: code, Message: message}
}

// Classify converts a raw failure into a classified error. fallback is the
// operation-specific default used when the failure matches none of the
// boundary's typed signals.
//
// Priority: no connectivity, then malformed envelope, then explicit remote
// refusal, then the fallback.
func Classify(err error, fallback Code) *ClassifiedError {
	if err == nil {
		return nil
	}

	// Already classified failures pass through untouched.
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}

	if errors.Is(err, syncapi.ErrOffline) {
		out := &ClassifiedError{Code: CodeNetworkError, Message: "no network connection"}
		var te *syncapi.TransportError
		if errors.As(err, &te) && te.RequestID != "" {
			out.Context = map[string]string{"request_id": te.RequestID}
		}
		return out
	}

	var ee *syncapi.EnvelopeError
	if errors.As(err, &ee) {
		return &ClassifiedError{Code: CodeInvalidResponse, Message: ee.Reason}
	}

	var re *syncapi.RemoteError
	if errors.As(err, &re) {
		return &ClassifiedError{Code: CodeServerError, Message: re.Message}
	}

	return &ClassifiedError{Code: fallback, Message: err.Error()}
}
