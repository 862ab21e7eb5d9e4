package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ClientError
		expected string
	}{
		{
			name:     "message only",
			err:      &ClientError{StatusCode: 404, Body: ClientErrorBody{Message: "Not Found"}},
			expected: "client error (status 404): Not Found",
		},
		{
			name: "with details",
			err: &ClientError{
				StatusCode: 422,
				Body: ClientErrorBody{
					Message: "Validation Failed",
					Errors: []ClientErrorDetail{
						{Resource: "Milestone", Field: "title", Code: "already_exists"},
					},
				},
			},
			expected: "client error (status 422): Validation Failed; Milestone.title: already_exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestOtherErrors_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	assert.Equal(t, "configuration error: bad", (&ConfigurationError{Description: "bad"}).Error())
	assert.Equal(t, "transport error: GET http://x/y: connection refused",
		(&TransportError{Method: "GET", URL: "http://x/y", Err: cause}).Error())
	assert.Equal(t, "deserialization error (status 200): connection refused",
		(&DeserializationError{StatusCode: 200, Err: cause}).Error())
	assert.Equal(t, "unexpected response status code (status 502)",
		(&UnexpectedStatusError{StatusCode: 502, Description: "unexpected response status code"}).Error())
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("eof")

	assert.ErrorIs(t, &TransportError{Err: cause}, cause)
	assert.ErrorIs(t, &DeserializationError{Err: cause}, cause)
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting issue: %w", &ClientError{StatusCode: http.StatusNotFound})
	unauthorized := &ClientError{StatusCode: http.StatusUnauthorized}
	forbidden := &ClientError{StatusCode: http.StatusForbidden}
	invalid := &ClientError{StatusCode: http.StatusUnprocessableEntity}
	transport := fmt.Errorf("searching: %w", &TransportError{Err: errors.New("reset")})
	server := &UnexpectedStatusError{StatusCode: http.StatusInternalServerError}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsClientError(notFound))
	assert.False(t, IsUnauthorized(notFound))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsForbidden(forbidden))
	assert.True(t, IsValidationFailed(invalid))

	assert.True(t, IsTransport(transport))
	assert.False(t, IsClientError(transport))

	assert.False(t, IsClientError(server))
	assert.False(t, IsNotFound(nil))
}
