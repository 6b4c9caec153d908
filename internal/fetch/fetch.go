// Package fetch provides source acquisition for the tally CLI tool;
// it retrieves content from local files, URLs, and standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Size limits to prevent memory overload
// TODO: make these configurable via command-line flags
const (
	maxFileBytes = 50 * 1024 * 1024  // 50MB limit for files and stdin
	maxHTTPBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// httpRequestTimeout bounds the total time for a single HTTP fetch.
const httpRequestTimeout = 30 * time.Second

// phase timeouts derived from httpRequestTimeout
var (
	httpDialTimeout           = httpRequestTimeout / 6
	httpTLSTimeout            = httpRequestTimeout / 6
	httpResponseHeaderTimeout = httpRequestTimeout / 2
)

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	remaining int64
	source    string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.remaining <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.remaining {
		p = p[0:l.remaining]
	}
	n, err = l.ReadCloser.Read(p)
	l.remaining -= int64(n)
	return
}

// httpClient is shared across fetches, with timeouts to prevent indefinite
// hangs. Safe for concurrent use.
var httpClient = &http.Client{
	Timeout: httpRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		// disable keep-alives to avoid connection reuse issues
		DisableKeepAlives: true,
	},
}

// GetContent retrieves content from a source and returns an io.ReadCloser.
// Three source forms are supported:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// ctx allows for cancellation and timeout control of fetch operations.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			remaining:  maxFileBytes,
			source:     "stdin",
		}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

// fetchURL retrieves content from an HTTP or HTTPS URL.
// ctx allows for cancellation and timeout control of HTTP requests.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "tally/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject oversized responses up front when Content-Length is present
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > maxHTTPBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, maxHTTPBytes)
		}
	}

	// without Content-Length, enforce the limit while reading
	return &limitedReadCloser{
		ReadCloser: resp.Body,
		remaining:  maxHTTPBytes,
		source:     url,
	}, nil
}

// fetchFile opens a local file for reading, checking existence and size first.
func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	if fileInfo.Size() > maxFileBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), maxFileBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}
