package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ConfigurationError is returned when a client cannot be built or a request
// target cannot be resolved from its configuration.
type ConfigurationError struct {
	Description string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Description
}

// TransportError is returned when no response was received from the backend.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializationError is returned when a success response body does not
// match the expected shape.
type DeserializationError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error (status %d): %v", e.StatusCode, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// ClientErrorDetail describes a single field-level failure.
type ClientErrorDetail struct {
	Resource string `json:"resource" yaml:"resource"`
	Field    string `json:"field"    yaml:"field"`
	Code     string `json:"code"     yaml:"code"`
}

// ClientErrorBody is the body a backend returns alongside a 4xx status.
type ClientErrorBody struct {
	Message          string              `json:"message"                     yaml:"message"`
	Errors           []ClientErrorDetail `json:"errors,omitempty"            yaml:"errors,omitempty"`
	DocumentationURL string              `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
}

// ClientError is returned for 4xx responses. Callers are expected to branch on
// it for not-found, validation and authentication failures.
type ClientError struct {
	StatusCode int
	Body       ClientErrorBody
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "client error (status %d): %s", e.StatusCode, e.Body.Message)

	for _, detail := range e.Body.Errors {
		fmt.Fprintf(&builder, "; %s.%s: %s", detail.Resource, detail.Field, detail.Code)
	}

	return builder.String()
}

// UnexpectedStatusError is returned for any status outside 2xx and 4xx.
type UnexpectedStatusError struct {
	StatusCode  int
	Description string
}

// Error implements the error interface.
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Description, e.StatusCode)
}

// Static errors for err113 compliance.
var (
	ErrNoMoreItems      = errors.New("no more items")
	ErrConfigRequired   = errors.New("config is required")
	ErrOwnerRequired    = errors.New("repository owner is required")
	ErrRepoRequired     = errors.New("repository name is required")
	ErrNoWorkspace      = errors.New("no workspace found for repository")
	ErrSprintNotFound   = errors.New("sprint not found")
	ErrPipelineNotFound = errors.New("pipeline not found")
	ErrMemberNotFound   = errors.New("organization member not found")
)

// IsClientError checks if the error is a 4xx backend error.
func IsClientError(err error) bool {
	clientErr := &ClientError{}

	return errors.As(err, &clientErr)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasClientStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasClientStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasClientStatus(err, http.StatusForbidden)
}

// IsValidationFailed checks if the error is a 422 with field-level details.
func IsValidationFailed(err error) bool {
	return hasClientStatus(err, http.StatusUnprocessableEntity)
}

// IsTransport checks if the error happened before any response was received.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

func hasClientStatus(err error, status int) bool {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == status
	}

	return false
}
