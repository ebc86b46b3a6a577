package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

// RetryConfig controls how often a failed completion is attempted again.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig suits chat completion calls.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// wait is the pause before retry number attempt, counted from zero. A
// Retry-After hint from the upstream replaces the backoff. Both are capped
// at MaxWait.
func (rc RetryConfig) wait(attempt int, err error) time.Duration {
	d := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
	var se *statusError
	if errors.As(err, &se) && se.retryAfter > 0 {
		d = se.retryAfter
	}
	return min(d, rc.MaxWait)
}

// statusError is an upstream status worth another attempt: throttling or a
// server side failure.
type statusError struct {
	code       int
	retryAfter time.Duration
}

func newStatusError(resp *http.Response) *statusError {
	se := &statusError{code: resp.StatusCode}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		se.retryAfter = time.Duration(secs) * time.Second
	}
	return se
}

func (e *statusError) Error() string {
	return fmt.Sprintf("advisor upstream returned %d %s", e.code, http.StatusText(e.code))
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// transient reports whether another attempt of an advisor call may succeed.
// An open breaker or a finished context ends the call at once.
func transient(err error) bool {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// withRetry runs call until it succeeds, fails permanently or the retry
// budget is spent.
func (a *OpenAIAdvisor) withRetry(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= a.retry.MaxRetries; attempt++ {
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !transient(err) || attempt == a.retry.MaxRetries {
			break
		}

		wait := a.retry.wait(attempt, err)
		slog.Debug("retrying advisor call",
			slog.String("model", a.model),
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.Any("error", err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
