package websearch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Backoff bounds for rate-limited requests. Tests shrink them.
var (
	RetryBaseDelay = 2 * time.Second
	RetryMaxDelay  = 30 * time.Second
)

const defaultMaxRetries = 3

// DoWithRetry sends req and, while the server answers 429, waits and sends it
// again, at most maxRetries extra times (default 3 when maxRetries < 1).
// The wait is the server's Retry-After when present, else RetryBaseDelay
// doubled per attempt, never more than RetryMaxDelay. The final 429 is
// returned to the caller unread.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger *slog.Logger) (*http.Response, error) {
	if maxRetries < 1 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := retryDelay(resp.Header.Get("Retry-After"), attempt, time.Now())
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Debug("rate limited",
			"host", req.URL.Host,
			"wait", wait,
			"attempt", attempt+1,
			"max_retries", maxRetries)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryDelay picks the wait before retry number attempt+1. retryAfter is
// either delay-seconds or an HTTP date.
func retryDelay(retryAfter string, attempt int, now time.Time) time.Duration {
	wait := RetryMaxDelay
	if attempt < 32 {
		if b := RetryBaseDelay << attempt; b > 0 {
			wait = b
		}
	}
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
			wait = RetryMaxDelay
			if secs < int(RetryMaxDelay/time.Second) {
				wait = time.Duration(secs) * time.Second
			}
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			wait = max(at.Sub(now), 0)
		}
	}
	if wait < 0 || wait > RetryMaxDelay {
		wait = RetryMaxDelay
	}
	return wait
}
