// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
)

// MockRoundTripper returns the same response (or error) for every request.
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// QueuedResponse is one scripted transport outcome.
type QueuedResponse struct {
	Response *http.Response
	Err      error
}

// QueueRoundTripper serves scripted responses in order and records the
// requests it saw. A drained queue fails the request.
type QueueRoundTripper struct {
	Queue    []QueuedResponse
	Requests []*http.Request
}

func (q *QueueRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	q.Requests = append(q.Requests, req)

	if len(q.Queue) == 0 {
		return nil, errors.New("no scripted responses")
	}

	next := q.Queue[0]
	q.Queue = q.Queue[1:]

	if next.Response != nil && next.Response.Request == nil {
		next.Response.Request = req
	}
	return next.Response, next.Err
}

// NewResponse builds an *http.Response with the given status and body.
func NewResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
