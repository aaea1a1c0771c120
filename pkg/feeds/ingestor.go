package feeds

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/models"
)

// Ingestor wraps one upstream feed: fetch, normalize to lead patches.
// Ingestors are independent; one failing never blocks the others.
type Ingestor interface {
	Name() string
	Load(ctx context.Context) ([]models.LeadPatch, error)
}

// LoadWithTimeout races an ingestor against a fixed deadline. Exceeding the
// deadline yields a timeout error distinct from a hard fetch failure, so the
// caller can fall back to a known-good dataset instead of blocking. A late
// settlement of the losing fetch is dropped, never merged.
func LoadWithTimeout(ctx context.Context, ing Ingestor, timeout time.Duration) ([]models.LeadPatch, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		patches []models.LeadPatch
		err     error
	}
	done := make(chan result, 1)

	go func() {
		patches, err := ing.Load(ctx)
		done <- result{patches: patches, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewTimeoutError(ing.Name())
		}
		return r.patches, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewTimeoutError(ing.Name())
		}
		return nil, ctx.Err()
	}
}

// parseISOTime parses an upstream timestamp, tolerating both RFC3339 and
// date-only values. Returns false for empty or unparseable input.
func parseISOTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEpochMillis parses the recent-activity feed's millisecond timestamps
func parseEpochMillis(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
