package sync

import (
	"context"
	"encoding/json"
	"errors"
	stdsync "sync"
	"time"

	"github.com/premiereye/salesops/pkg/cache"
	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/feeds"
	"github.com/premiereye/salesops/pkg/logger"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/store"
	"github.com/premiereye/salesops/pkg/vocab"
)

const (
	defaultFeedTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
	lastKnownGoodTTL    = 24 * time.Hour
)

// StageWriter persists a lead's pipeline stage upstream
type StageWriter interface {
	UpdatePipelineStage(ctx context.Context, id string, stage vocab.PipelineStage) error
}

// Recorder receives operational metrics from the coordinator
type Recorder interface {
	RecordFeedRefresh(feed, status string)
	ObserveFeedDuration(feed string, seconds float64)
	RecordStatusUpdate(success bool)
	SetLeadsInStore(count float64)
}

// Coordinator orchestrates concurrent feed ingestion and the optimistic
// status-update protocol. Each refresh gets a generation number; a feed
// result is merged only while its generation is still current, so a slow
// stale response can never overwrite a newer one.
type Coordinator struct {
	store     *store.LeadStore
	ingestors []feeds.Ingestor
	writer    StageWriter
	cache     *cache.Client
	log       logger.Logger
	metrics   Recorder

	feedTimeout  time.Duration
	writeTimeout time.Duration

	mu         stdsync.Mutex
	generation uint64
	cancel     context.CancelFunc
	states     map[string]models.FeedState
	syncErr    string

	writes stdsync.WaitGroup
}

// Options configures a Coordinator. Cache and Metrics are optional.
type Options struct {
	Store       *store.LeadStore
	Ingestors   []feeds.Ingestor
	Writer      StageWriter
	Cache       *cache.Client
	Logger      logger.Logger
	Metrics     Recorder
	FeedTimeout time.Duration
}

// New creates a sync coordinator
func New(opts Options) *Coordinator {
	feedTimeout := opts.FeedTimeout
	if feedTimeout <= 0 {
		feedTimeout = defaultFeedTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Coordinator{
		store:        opts.Store,
		ingestors:    opts.Ingestors,
		writer:       opts.Writer,
		cache:        opts.Cache,
		log:          log,
		metrics:      opts.Metrics,
		feedTimeout:  feedTimeout,
		writeTimeout: defaultWriteTimeout,
		states:       make(map[string]models.FeedState),
	}
}

// RefreshAll launches every ingestor concurrently and merges each result
// into the store as it arrives; there is no wait-for-all barrier. Calling
// it again supersedes any loads still in flight.
func (c *Coordinator) RefreshAll(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	// Feeds outlive the triggering request, so detach from its cancellation
	// but keep its values.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	for _, ing := range c.ingestors {
		c.states[ing.Name()] = models.FeedState{Status: models.FeedLoading, UpdatedAt: time.Now().UTC()}
	}
	c.mu.Unlock()

	for _, ing := range c.ingestors {
		go c.runFeed(runCtx, gen, ing)
	}
}

func (c *Coordinator) runFeed(ctx context.Context, gen uint64, ing feeds.Ingestor) {
	name := ing.Name()
	start := time.Now()

	patches, err := feeds.LoadWithTimeout(ctx, ing, c.feedTimeout)
	if c.metrics != nil {
		c.metrics.ObserveFeedDuration(name, time.Since(start).Seconds())
	}

	switch {
	case err == nil:
		if c.commit(gen, name, patches, models.FeedOK, "") {
			c.log.Info("feed merged", "feed", name, "leads", len(patches))
			c.record(name, models.FeedOK)
			c.saveLastKnownGood(ctx, name, patches)
		}
	case errors.Is(err, context.Canceled):
		// Superseded by a newer refresh; drop silently.
	case domain.IsTimeout(err):
		if cached, ok := c.lastKnownGood(ctx, name); ok {
			if c.commit(gen, name, cached, models.FeedStale, err.Error()) {
				c.log.Warn("feed timed out, merged last known-good payload", "feed", name, "leads", len(cached))
				c.record(name, models.FeedStale)
			}
			return
		}
		c.fail(gen, name, err)
	default:
		c.fail(gen, name, err)
	}
}

// commit merges a feed result if its generation is still current. The
// generation check and the merge happen under one lock so a superseded
// result can never slip in between.
func (c *Coordinator) commit(gen uint64, feed string, patches []models.LeadPatch, status, errMsg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.store.MergeAll(patches)
	c.states[feed] = models.FeedState{
		Status:    status,
		Error:     errMsg,
		UpdatedAt: time.Now().UTC(),
		Leads:     len(patches),
	}
	if c.metrics != nil {
		c.metrics.SetLeadsInStore(float64(c.store.Len()))
	}
	return true
}

func (c *Coordinator) fail(gen uint64, feed string, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.states[feed] = models.FeedState{
		Status:    models.FeedError,
		Error:     err.Error(),
		UpdatedAt: time.Now().UTC(),
	}
	c.mu.Unlock()

	c.log.Error("feed load failed", "feed", feed, "error", err)
	c.record(feed, models.FeedError)
}

func (c *Coordinator) record(feed, status string) {
	if c.metrics != nil {
		c.metrics.RecordFeedRefresh(feed, status)
	}
}

// UpdateStatus applies the optimistic local patch first, then issues the
// remote pipeline write in the background. A failed write sets the
// user-visible sync error but never rolls the local patch back: the local
// state is the operator's intent and stays authoritative. Statuses outside
// pipeline tracking skip the remote write entirely.
func (c *Coordinator) UpdateStatus(ctx context.Context, id string, status vocab.LeadStatus) {
	stage, hasStage := vocab.StatusToStage(status)

	patch := models.LeadPatch{Status: &status}
	if hasStage {
		patch.PipelineStage = &stage
	}
	c.store.Patch(id, patch)

	if !hasStage {
		return
	}

	c.writes.Add(1)
	go func() {
		defer c.writes.Done()

		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
		defer cancel()

		if err := c.writer.UpdatePipelineStage(wctx, id, stage); err != nil {
			perr := domain.NewPersistenceError(err)
			c.mu.Lock()
			c.syncErr = perr.Error()
			c.mu.Unlock()
			c.log.Error("pipeline stage sync failed", "lead_id", id, "stage", stage, "error", err)
			if c.metrics != nil {
				c.metrics.RecordStatusUpdate(false)
			}
			return
		}

		c.mu.Lock()
		c.syncErr = ""
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordStatusUpdate(true)
		}
	}()
}

// SyncError returns the pending persistence error message, empty when the
// last write succeeded
func (c *Coordinator) SyncError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncErr
}

// FeedStates returns a copy of the per-feed load states
func (c *Coordinator) FeedStates() map[string]models.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]models.FeedState, len(c.states))
	for k, v := range c.states {
		out[k] = v
	}
	return out
}

// Reset wipes the session: cancels in-flight loads, clears the store and
// all flags. Used on logout.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.states = make(map[string]models.FeedState)
	c.syncErr = ""
	c.mu.Unlock()

	c.store.Reset()
	if c.metrics != nil {
		c.metrics.SetLeadsInStore(0)
	}
}

// Wait blocks until all in-flight persistence writes have settled. Called
// on graceful shutdown.
func (c *Coordinator) Wait() {
	c.writes.Wait()
}

func feedCacheKey(feed string) string {
	return "feeds:last:" + feed
}

func (c *Coordinator) saveLastKnownGood(ctx context.Context, feed string, patches []models.LeadPatch) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(patches)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, feedCacheKey(feed), payload, lastKnownGoodTTL); err != nil {
		c.log.Warn("failed caching feed payload", "feed", feed, "error", err)
	}
}

func (c *Coordinator) lastKnownGood(ctx context.Context, feed string) ([]models.LeadPatch, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, feedCacheKey(feed))
	if err != nil || raw == "" {
		return nil, false
	}
	var patches []models.LeadPatch
	if err := json.Unmarshal([]byte(raw), &patches); err != nil {
		return nil, false
	}
	return patches, true
}
