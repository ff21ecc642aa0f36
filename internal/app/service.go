// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/okian/folio/internal/adapters/cache"
	"github.com/okian/folio/internal/domain/classify"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

const (
	pageKey         = "page"
	defaultInterval = 60 * time.Second
)

// Builder produces a fresh view model. *Aggregator implements it.
type Builder interface {
	Build(ctx context.Context) model.ViewModel
}

// Service serves built pages under a revalidation policy: a page is reused
// until it is older than the interval, concurrent rebuilds are collapsed
// into one, and a rebuild can be forced.
type Service struct {
	mu sync.RWMutex

	// storeMu orders cache writes against revalidation; a build started
	// before the latest Revalidate never stores its page.
	storeMu    sync.Mutex
	generation uint64

	// Core components
	builder    Builder
	classifier *classify.Classifier
	cache      cache.Store
	group      singleflight.Group

	// Configuration
	interval time.Duration
	author   model.Author
	now      func() time.Time
	newID    func() string

	// State
	started       bool
	builds        int64
	cacheHits     int64
	cacheMisses   int64
	revalidations int64
	lastBuildID   string
	lastBuiltAt   time.Time

	// Logging
	logger logger.Logger
}

// New constructs a Service around builder.
func New(builder Builder, opts ...Option) *Service {
	s := &Service{
		builder:    builder,
		classifier: classify.New(),
		interval:   defaultInterval,
		now:        time.Now,
		newID:      uuid.NewString,
		logger:     logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		s.cache = cache.NewMemory(cache.WithClock(s.now))
	}
	return s
}

// Start warms the cache with a first build.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting page service...",
		logger.Duration("revalidate", s.interval))

	if err := s.cache.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "page cache unavailable, every request will rebuild", logger.Error(err))
	}

	page := s.Page(ctx)
	s.logger.Info(ctx, "page service started", logger.String("buildId", page.BuildID))
	return nil
}

// Stop releases the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping page service...")
	if err := s.cache.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing page cache failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "page service stopped")
}

// Page returns the current page, rebuilding it when the cached copy is
// missing or older than the revalidation interval. It never fails.
func (s *Service) Page(ctx context.Context) model.Page {
	if page, ok := s.cached(ctx); ok {
		return page
	}
	return s.rebuild(ctx)
}

// Revalidate discards the cached page and builds a new one.
func (s *Service) Revalidate(ctx context.Context) model.Page {
	s.storeMu.Lock()
	s.generation++
	if err := s.cache.Delete(ctx, pageKey); err != nil {
		s.logger.Warn(ctx, "dropping cached page failed", logger.Error(err))
	}
	s.group.Forget(pageKey)
	s.storeMu.Unlock()

	s.mu.Lock()
	s.revalidations++
	s.mu.Unlock()
	metrics.RecordRevalidation()

	page := s.rebuild(ctx)
	s.logger.Info(ctx, "page revalidated", logger.String("buildId", page.BuildID))
	return page
}

// View returns the view model of the current page.
func (s *Service) View(ctx context.Context) model.ViewModel {
	return s.Page(ctx).View
}

// SkillCategories returns the current page's skill buckets.
func (s *Service) SkillCategories(ctx context.Context) []model.CategoryBucket {
	return s.Page(ctx).SkillCategories
}

// Classify maps a single skill label to its display category.
func (s *Service) Classify(label string) string {
	return string(s.classifier.Classify(label))
}

func (s *Service) cached(ctx context.Context) (model.Page, bool) {
	if s.interval <= 0 {
		return model.Page{}, false
	}

	var page model.Page
	ok, err := s.cache.GetJSON(ctx, pageKey, &page)
	switch {
	case err != nil:
		metrics.RecordCacheError()
		s.logger.Warn(ctx, "reading cached page failed", logger.Error(err))
		ok = false
	case ok && s.now().Sub(page.BuiltAt) >= s.interval:
		ok = false
	}

	s.mu.Lock()
	if ok {
		s.cacheHits++
	} else {
		s.cacheMisses++
	}
	s.mu.Unlock()

	if ok {
		metrics.RecordCacheHit()
		page.View.Normalize()
		return page, true
	}
	metrics.RecordCacheMiss()
	return model.Page{}, false
}

// rebuild shares one build among concurrent callers. The build ignores the
// caller's cancellation; sources stay bounded by their own fetch timeouts.
func (s *Service) rebuild(ctx context.Context) model.Page {
	v, _, _ := s.group.Do(pageKey, func() (any, error) {
		return s.build(context.WithoutCancel(ctx)), nil
	})
	return v.(model.Page)
}

func (s *Service) build(ctx context.Context) model.Page {
	s.storeMu.Lock()
	generation := s.generation
	s.storeMu.Unlock()

	view := model.ViewModel{}
	if s.builder != nil {
		view = s.builder.Build(ctx)
	}
	view.Normalize()

	page := model.Page{
		BuildID:         s.newID(),
		BuiltAt:         s.now().UTC(),
		Author:          s.author,
		View:            view,
		SkillCategories: s.classifier.Buckets(view.Skills),
	}
	s.recordCategories(page.SkillCategories)

	current := s.store(ctx, generation, page)

	s.mu.Lock()
	s.builds++
	if current {
		s.lastBuildID = page.BuildID
		s.lastBuiltAt = page.BuiltAt
	}
	s.mu.Unlock()

	s.logger.Debug(ctx, "page built",
		logger.String("buildId", page.BuildID),
		logger.Int("skillCategories", len(page.SkillCategories)))
	return page
}

// store caches page unless a revalidation happened after its build started.
// It reports whether the page is still current.
func (s *Service) store(ctx context.Context, generation uint64, page model.Page) bool {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if generation != s.generation {
		s.logger.Debug(ctx, "discarding page superseded by revalidation",
			logger.String("buildId", page.BuildID))
		return false
	}
	if s.interval > 0 {
		if err := s.cache.SetJSON(ctx, pageKey, page, s.interval); err != nil {
			metrics.RecordCacheError()
			s.logger.Warn(ctx, "storing page failed", logger.Error(err))
		}
	}
	return true
}

func (s *Service) recordCategories(buckets []model.CategoryBucket) {
	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b.CategoryName] = len(b.Members)
	}
	for _, c := range s.classifier.Categories() {
		metrics.UpdateSkillCategory(string(c), counts[string(c)])
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"builds":            s.builds,
		"cacheHits":         s.cacheHits,
		"cacheMisses":       s.cacheMisses,
		"revalidations":     s.revalidations,
		"revalidateSeconds": int(s.interval / time.Second),
	}
	if s.lastBuildID != "" {
		stats["lastBuildId"] = s.lastBuildID
		stats["lastBuiltAt"] = s.lastBuiltAt.Format(time.RFC3339)
	}
	return stats
}
