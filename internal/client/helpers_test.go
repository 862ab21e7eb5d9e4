package client

import (
	"encoding/json"
	"net/http"
	"testing"

	internalhttp "github.com/fivetwenty-io/decadog/internal/http"
	"github.com/stretchr/testify/require"
)

// newTestHTTPClient creates a transport client against a test server.
func newTestHTTPClient(t *testing.T, baseURL string) *internalhttp.Client {
	t.Helper()

	httpClient, err := internalhttp.NewClient(baseURL, "test-token")
	require.NoError(t, err)

	return httpClient
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
