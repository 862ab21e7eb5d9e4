package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/decadog/pkg/api"
)

// UnexpectedStatusDescription describes responses outside 2xx and 4xx.
const UnexpectedStatusDescription = "unexpected response status code"

// ErrEmptyBody is the cause of a DeserializationError for an empty success
// body where content was expected.
var ErrEmptyBody = errors.New("empty response body")

// Classify maps a response onto a success value or one error category:
//   - 2xx decodes the body as T, or *api.DeserializationError
//   - 4xx yields *api.ClientError with the decoded error body
//   - anything else yields *api.UnexpectedStatusError
//
// The body is always drained and closed. An empty success body is accepted
// only when T is api.NoContent.
func Classify[T any](resp *http.Response) (T, error) {
	var result T

	if resp == nil {
		return result, &api.UnexpectedStatusError{Description: UnexpectedStatusDescription}
	}

	defer drainAndClose(resp.Body)

	status := resp.StatusCode

	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return decodeSuccess[T](resp)
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return result, &api.ClientError{StatusCode: status, Body: readClientErrorBody(resp)}
	default:
		return result, &api.UnexpectedStatusError{StatusCode: status, Description: UnexpectedStatusDescription}
	}
}

func decodeSuccess[T any](resp *http.Response) (T, error) {
	var result T

	if resp.Body == nil {
		return emptySuccess[T](resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &api.DeserializationError{StatusCode: resp.StatusCode, Err: err}
	}

	if _, ok := any(result).(api.NoContent); ok {
		return result, nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return emptySuccess[T](resp.StatusCode)
	}

	err = json.Unmarshal(body, &result)
	if err != nil {
		var zero T

		return zero, &api.DeserializationError{StatusCode: resp.StatusCode, Err: err}
	}

	return result, nil
}

func emptySuccess[T any](status int) (T, error) {
	var result T

	if _, ok := any(result).(api.NoContent); ok {
		return result, nil
	}

	return result, &api.DeserializationError{StatusCode: status, Err: ErrEmptyBody}
}

// readClientErrorBody decodes the structured error body. A body that is not
// the structured shape is kept verbatim as the message.
func readClientErrorBody(resp *http.Response) api.ClientErrorBody {
	if resp.Body == nil {
		return api.ClientErrorBody{Message: http.StatusText(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return api.ClientErrorBody{Message: http.StatusText(resp.StatusCode)}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return api.ClientErrorBody{Message: http.StatusText(resp.StatusCode)}
	}

	var body api.ClientErrorBody

	err = json.Unmarshal(data, &body)
	if err != nil || body.Message == "" {
		return api.ClientErrorBody{Message: text}
	}

	return body
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
