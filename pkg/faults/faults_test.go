package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

func TestClassificationTable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback Code
		want     Code
	}{
		{
			name:     "transport exception",
			err:      &syncapi.TransportError{Err: errors.New("dial tcp: connection refused")},
			fallback: CodeReorderFailed,
			want:     CodeNetworkError,
		},
		{
			name:     "malformed envelope",
			err:      &syncapi.EnvelopeError{Reason: "body is not a JSON envelope"},
			fallback: CodeReorderFailed,
			want:     CodeInvalidResponse,
		},
		{
			name:     "explicit remote refusal",
			err:      &syncapi.RemoteError{Message: "order rejected"},
			fallback: CodeReorderFailed,
			want:     CodeServerError,
		},
		{
			name:     "arbitrary error falls back",
			err:      errors.New("something odd"),
			fallback: CodeReorderFailed,
			want:     CodeReorderFailed,
		},
		{
			name:     "fetch fallback",
			err:      errors.New("something odd"),
			fallback: CodeFetchFailed,
			want:     CodeFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := Classify(tt.err, tt.fallback)
			require.NotNil(t, ce)
			assert.Equal(t, tt.want, ce.Code)
		})
	}
}

func TestTransportBeatsRemote(t *testing.T) {
	// A wrapped transport failure stays a network error even when other text
	// suggests a server problem.
	err := fmt.Errorf("persist order: %w", &syncapi.TransportError{RequestID: "req-1", Err: errors.New("EOF")})
	ce := Classify(err, CodeReorderFailed)
	assert.Equal(t, CodeNetworkError, ce.Code)
	assert.Equal(t, "req-1", ce.Context["request_id"])
}

func TestServerMessageVerbatim(t *testing.T) {
	ce := Classify(&syncapi.RemoteError{Message: "course is locked by another editor"}, CodeReorderFailed)
	assert.Equal(t, CodeServerError, ce.Code)
	assert.Equal(t, "course is locked by another editor", ce.Message)
}

func TestAlreadyClassifiedPassesThrough(t *testing.T) {
	orig := New(CodeValidationError, "missing course id")
	ce := Classify(fmt.Errorf("commit: %w", orig), CodeReorderFailed)
	assert.Same(t, orig, ce)
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil, CodeReorderFailed))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "network_error: no network connection",
		Classify(&syncapi.TransportError{Err: errors.New("x")}, CodeReorderFailed).Error())
	assert.Equal(t, "reorder_failed", (&ClassifiedError{Code: CodeReorderFailed}).Error())
}
