package testing

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// Default paths served by MockReleaseServer
const (
	VersionPath = "/Version.txt"
	ArchivePath = "/game.zip"
)

// MockReleaseServer hosts a version file and a release archive for testing
type MockReleaseServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	requests  []MockRequest
}

// MockResponse holds response data for a path
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// MockRequest records a request made to the mock server
type MockRequest struct {
	Method string
	Path   string
}

// NewMockReleaseServer creates a server that answers 404 until responses are set
func NewMockReleaseServer(t *testing.T) *MockReleaseServer {
	t.Helper()

	mock := &MockReleaseServer{
		responses: make(map[string]MockResponse),
	}

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, MockRequest{Method: r.Method, Path: r.URL.Path})
		response, ok := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}

		for key, value := range response.Headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(response.Body)))

		if response.StatusCode != 0 {
			w.WriteHeader(response.StatusCode)
		}

		w.Write(response.Body)
	}))

	t.Cleanup(func() {
		mock.Server.Close()
	})

	return mock
}

// SetRawResponse sets a raw response for a path
func (m *MockReleaseServer) SetRawResponse(path string, statusCode int, body []byte, headers map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = MockResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}
}

// SetVersion serves text as the remote version
func (m *MockReleaseServer) SetVersion(text string) {
	m.SetRawResponse(VersionPath, http.StatusOK, []byte(text), map[string]string{"Content-Type": "text/plain; charset=utf-8"})
}

// SetArchive serves data as the release archive
func (m *MockReleaseServer) SetArchive(data []byte) {
	m.SetRawResponse(ArchivePath, http.StatusOK, data, map[string]string{"Content-Type": "application/zip"})
}

// SetError makes path answer with statusCode
func (m *MockReleaseServer) SetError(path string, statusCode int) {
	m.SetRawResponse(path, statusCode, []byte(http.StatusText(statusCode)), nil)
}

// VersionURL returns the URL of the version file
func (m *MockReleaseServer) VersionURL() string {
	return m.URL + VersionPath
}

// ArchiveURL returns the URL of the archive
func (m *MockReleaseServer) ArchiveURL() string {
	return m.URL + ArchivePath
}

// GetRequestCount returns the number of GET requests made to a path
func (m *MockReleaseServer) GetRequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, req := range m.requests {
		if req.Path == path && req.Method == http.MethodGet {
			count++
		}
	}
	return count
}

// ClearRequests clears the recorded requests
func (m *MockReleaseServer) ClearRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}
