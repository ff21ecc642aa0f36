package service

import (
	"time"

	"github.com/okian/folio/internal/adapters/cache"
	"github.com/okian/folio/internal/domain/classify"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCache sets the page store. The default is an in-process store.
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.cache = store
		}
	}
}

// WithClassifier sets the skill classifier used to bucket skills.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithRevalidateInterval sets how long a built page is served.
// Zero disables caching: every request rebuilds.
func WithRevalidateInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// WithAuthor sets the profile stamped on every page.
func WithAuthor(a model.Author) Option {
	return func(s *Service) {
		s.author = a
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBuildIDs replaces the build id generator, for tests.
func WithBuildIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}
