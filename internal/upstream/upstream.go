// Package upstream holds what the outbound API wrappers share: the failure
// taxonomy, transport error classification and call metrics.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/varsilias/crystal/internal/metrics"
)

var (
	ErrTimeout    = errors.New("upstream: request timed out")
	ErrConnection = errors.New("upstream: connection failed")
	ErrDecode     = errors.New("upstream: malformed response body")
)

// HTTPError is a 4xx/5xx answer not covered by a more specific error.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream: HTTP %d %s", e.Status, e.Reason())
}

// Reason is the canonical status text, e.g. "Bad Gateway".
func (e *HTTPError) Reason() string { return http.StatusText(e.Status) }

// Transport classifies an error returned by http.Client.Do.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

// Decode wraps a body decoding failure.
func Decode(err error) error {
	return fmt.Errorf("%w: %v", ErrDecode, err)
}

// NewHTTPClient returns the client used by every wrapper. Zero timeout means
// none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Observe records the latency and outcome of one call to service.
func Observe(service string, start time.Time, err error) {
	metrics.UpstreamDuration.WithLabelValues(service, Outcome(err)).Observe(time.Since(start).Seconds())
}

// Outcome is a short label for err.
func Outcome(err error) string {
	var herr *HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.As(err, &herr):
		return "http"
	default:
		return "error"
	}
}
