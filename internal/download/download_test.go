package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "launchpad-test" {
			t.Errorf("User-Agent = %q, want launchpad-test", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("\ufeff1.2.4\n"))
	}))
	defer server.Close()

	f := NewFetcher(WithUserAgent("launchpad-test"))
	got, err := f.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if got != "1.2.4\n" {
		t.Errorf("FetchText() = %q, want %q", got, "1.2.4\n")
	}
}

func TestFetchText_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher().FetchText(context.Background(), server.URL)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchText() error = %v, want *NetworkError", err)
	}
	if netErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", netErr.StatusCode, http.StatusNotFound)
	}
}

func TestFetchText_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewFetcher(WithTimeout(2*time.Second)).FetchText(context.Background(), url)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchText() error = %v, want *NetworkError", err)
	}
	if netErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", netErr.StatusCode)
	}
}

func TestFetchBinary_WithProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("launchpad"), 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "game", "archive.zip")

	var mu sync.Mutex
	var reported []int
	f := NewFetcher(WithPollInterval(time.Millisecond))
	err := f.FetchBinary(context.Background(), server.URL+"/archive.zip", dest, func(percent int) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, percent)
	})
	if err != nil {
		t.Fatalf("FetchBinary() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read download: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("downloaded %d bytes, want %d", len(data), len(payload))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reported) == 0 || reported[len(reported)-1] != 100 {
		t.Fatalf("progress = %v, want final report of 100", reported)
	}
	for _, p := range reported {
		if p < 0 || p > 100 {
			t.Errorf("progress %d out of range", p)
		}
	}
}

func TestFetchBinary_OverwritesExistingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.zip")
	if err := os.WriteFile(dest, []byte("old contents that are longer"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewFetcher().FetchBinary(context.Background(), server.URL+"/archive.zip", dest, nil); err != nil {
		t.Fatalf("FetchBinary() error = %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "new" {
		t.Errorf("destination = %q, want %q", string(data), "new")
	}
}

func TestFetchBinary_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.zip")
	err := NewFetcher().FetchBinary(context.Background(), server.URL+"/archive.zip", dest, nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchBinary() error = %v, want *NetworkError", err)
	}
	if netErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", netErr.StatusCode, http.StatusInternalServerError)
	}
}
