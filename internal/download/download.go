package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"
)

const (
	defaultUserAgent    = "launchpad"
	defaultPollInterval = 100 * time.Millisecond
	maxTextSize         = 64 * 1024
)

// ProgressCallback receives the completed percentage of a transfer in [0,100]
type ProgressCallback func(percent int)

// NetworkError reports a failed fetch: transport failure or non-success status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves version text and archive payloads over HTTP
type Fetcher struct {
	httpClient   *http.Client
	grabClient   *grab.Client
	userAgent    string
	pollInterval time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used for both text and binary fetches
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// WithTimeout sets the timeout of the default HTTP client. Binary downloads
// are bounded by the same timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithPollInterval sets how often download progress is sampled
func WithPollInterval(d time.Duration) Option {
	return func(f *Fetcher) {
		f.pollInterval = d
	}
}

// NewFetcher creates a Fetcher. Without options it uses a client with a 30s
// timeout for text and no timeout for archives.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent:    defaultUserAgent,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(f)
	}

	textClient := f.httpClient
	binaryClient := f.httpClient
	if textClient == nil {
		textClient = &http.Client{Timeout: 30 * time.Second}
		binaryClient = &http.Client{}
	}
	f.httpClient = textClient

	f.grabClient = grab.NewClient()
	f.grabClient.HTTPClient = binaryClient
	f.grabClient.UserAgent = f.userAgent

	return f
}

// FetchText downloads a small UTF-8 resource and returns its body
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &NetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTextSize))
	if err != nil {
		return "", &NetworkError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// FetchBinary streams url to destPath, reporting progress as it changes.
// On failure the destination may hold a partial file.
func (f *Fetcher) FetchBinary(ctx context.Context, url, destPath string, onProgress ProgressCallback) error {
	req, err := grab.NewRequest(destPath, url)
	if err != nil {
		return &NetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req = req.WithContext(ctx)
	req.NoResume = true // Always overwrite, never resume

	resp := f.grabClient.Do(req)

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	lastPercentage := -1
	report := func(percentage int) {
		if onProgress != nil && percentage != lastPercentage {
			onProgress(percentage)
			lastPercentage = percentage
		}
	}

	for {
		select {
		case <-ticker.C:
			if resp.Size() > 0 {
				report(int(resp.Progress() * 100))
			}
		case <-resp.Done:
			if err := resp.Err(); err != nil {
				return networkError(url, err)
			}
			report(100)
			return nil
		}
	}
}

func networkError(url string, err error) error {
	var status grab.StatusCodeError
	if errors.As(err, &status) {
		return &NetworkError{URL: url, StatusCode: int(status), Err: err}
	}
	return &NetworkError{URL: url, Err: err}
}
