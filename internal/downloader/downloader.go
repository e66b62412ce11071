// Package downloader implements the HTTP retrieval primitives for stream
// downloads: a single streaming fetch, the sequenced segment protocol, and
// content-length resolution. File lifecycle (create, delete on failure) is
// owned by the caller.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/danii/rustube/internal/logging"
	"github.com/danii/rustube/internal/types"

	"go.uber.org/zap"
)

// Downloader streams one resource to a writer.
type Downloader interface {
	// Download writes the resource to w in arrival order and returns the
	// number of bytes written.
	Download(ctx context.Context, w io.Writer) (int64, error)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: status=%d", e.Code)
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}

// FetchToWriter issues one streaming GET and copies the response body to w
// as it arrives. Non-2xx responses return a *StatusError. There are no
// retries; transport and write failures surface as-is.
func FetchToWriter(ctx context.Context, client *http.Client, rawURL string, w io.Writer) (int64, error) {
	logging.FromContext(ctx).Debug("get", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{Code: resp.StatusCode}
	}
	return io.Copy(w, resp.Body)
}

// ResolveContentLength issues a HEAD request and returns the declared
// Content-Length. A 2xx response that omits the header, or carries one
// that is not a non-negative integer, is a *types.UnexpectedResponseError.
func ResolveContentLength(ctx context.Context, client *http.Client, rawURL string) (int64, error) {
	logging.FromContext(ctx).Debug("head", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{Code: resp.StatusCode}
	}
	raw := resp.Header.Get("Content-Length")
	if raw == "" {
		return 0, &types.UnexpectedResponseError{
			Reason: "HEAD response did not contain a content-length",
		}
	}
	length, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || length < 0 {
		return 0, &types.UnexpectedResponseError{
			Reason: "HEAD content-length is not a valid integer: " + raw,
		}
	}
	return length, nil
}
