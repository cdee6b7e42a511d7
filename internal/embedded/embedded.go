// Package embedded serves a release bundled into the binary, so an offline
// build installs without reaching the release server.
package embedded

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/distantorigin/launchpad/internal/download"
)

const chunkSize = 256 << 10

// HasData reports whether this build carries a release.
// This is false for normal builds and true for builds with -tags embedded.
func HasData() bool {
	return len(getZipData()) > 0
}

// Fetcher answers version and archive requests from memory, ignoring URLs
type Fetcher struct {
	version string
	archive []byte
}

// New returns a fetcher over the bundled release, or nil when there is none
func New() *Fetcher {
	if !HasData() {
		return nil
	}
	return NewFetcher(getVersion(), getZipData())
}

// NewFetcher serves version and archive
func NewFetcher(version string, archive []byte) *Fetcher {
	return &Fetcher{version: version, archive: archive}
}

// FetchText returns the bundled version text
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &download.NetworkError{URL: url, Err: err}
	}
	if f.version == "" {
		return "", &download.NetworkError{URL: url, Err: fmt.Errorf("no bundled version")}
	}
	return f.version, nil
}

// FetchBinary writes the bundled archive to destPath, reporting progress per chunk
func (f *Fetcher) FetchBinary(ctx context.Context, url, destPath string, onProgress download.ProgressCallback) error {
	if len(f.archive) == 0 {
		return &download.NetworkError{URL: url, Err: fmt.Errorf("no bundled archive")}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	src := bytes.NewReader(f.archive)
	total := len(f.archive)
	written := 0
	last := -1
	for {
		if err := ctx.Err(); err != nil {
			return &download.NetworkError{URL: url, Err: err}
		}

		n, err := io.CopyN(out, src, chunkSize)
		written += int(n)
		if percent := written * 100 / total; onProgress != nil && percent != last {
			onProgress(percent)
			last = percent
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", destPath, err)
		}
	}

	return out.Close()
}
