package pipeline

import (
	"context"
	"time"

	"github.com/xenith-ms/xlpipe"
)

// DownloadFunc is the signature for a single download attempt.
type DownloadFunc func(ctx context.Context) error

// DefaultRetryDelays returns the backoff delays for download retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// DownloadWithRetryDelays runs a download with backoff retries. A nil
// delays slice means DefaultRetryDelays. Errors carrying ENOTFOUND or
// EINVALID are returned immediately; retrying cannot fix them. When
// all attempts fail the last error is wrapped as EUNAVAILABLE.
func DownloadWithRetryDelays(ctx context.Context, download DownloadFunc, delays []time.Duration) error {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := download(ctx)
		if err == nil {
			return nil
		}
		switch xlpipe.ErrorCode(err) {
		case xlpipe.ENOTFOUND, xlpipe.EINVALID:
			return err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return xlpipe.Errorf(xlpipe.EUNAVAILABLE, "download failed after %d attempts: %v", maxAttempts, lastErr)
}
