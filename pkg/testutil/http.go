// Package testutil provides request builders and response assertions shared
// by handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "propaudit/pkg/domain-errors"
)

// ErrorBody mirrors the JSON error envelope written by httputil.
type ErrorBody struct {
	Error   string               `json:"error"`
	Details []dErrors.FieldError `json:"details"`
}

// NewJSONRequest marshals body (when non-nil) into a JSON request.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON asserts the status and unmarshals the body into T.
func DecodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder, status int) T {
	t.Helper()
	require.Equal(t, status, rr.Code, "unexpected status, body: %s", rr.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "failed to unmarshal response")
	return out
}

// AssertError checks the status and the client-facing error message.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) ErrorBody {
	t.Helper()
	body := DecodeJSON[ErrorBody](t, rr, status)
	assert.Equal(t, message, body.Error, "unexpected error message")
	return body
}
