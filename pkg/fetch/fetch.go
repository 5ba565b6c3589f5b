// Package fetch retrieves catalog XML from a remote URL or local file and
// stores it at a flat cache location.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single catalog download.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNetwork is returned for HTTP failures: unreachable hosts,
	// timeouts, and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrIO is returned when the source file cannot be read or the
	// destination cannot be written.
	ErrIO = errors.New("i/o error")
)

// Fetcher downloads catalog documents with a bounded timeout.
type Fetcher struct {
	http *http.Client
}

// New creates a Fetcher. A non-positive timeout falls back to
// DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch reads all bytes from source (an HTTP(S) URL or a local file path),
// creates destination's parent directory if needed, writes the bytes
// atomically, and returns destination. Exactly one file is created or
// overwritten; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, source, destination string) (string, error) {
	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = f.download(ctx, source)
	} else {
		data, err = readLocal(source)
	}
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(destination, data); err != nil {
		return "", err
	}
	return destination, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrNetwork, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}
	return data, nil
}

func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return data, nil
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it into place, so readers never observe a partial write.
func writeFileAtomic(destination string, data []byte) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(destination)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), destination); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
