package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

const defaultFetchTimeout = 10 * time.Second

// PinnedSource lists a user's pinned repositories. Implementations absorb
// their own failures and return an empty slice instead.
type PinnedSource interface {
	PinnedRepositories(ctx context.Context, username string, count int) []model.RepositorySummary
}

// ContentSource reads the four content-store record kinds with the same
// failure contract as PinnedSource.
type ContentSource interface {
	Experience(ctx context.Context) []model.ExperienceRecord
	Skills(ctx context.Context) []model.SkillRecord
	Projects(ctx context.Context) []model.ProjectRecord
	Academics(ctx context.Context) []model.AcademicRecord
}

// Aggregator fans out to every source and joins the results into a view model.
type Aggregator struct {
	pinned   PinnedSource
	content  ContentSource
	username string
	count    int
	timeout  time.Duration
	logger   logger.Logger
}

// AggregatorOption applies a configuration option to the Aggregator.
type AggregatorOption func(*Aggregator)

// WithGitHubUser sets whose pinned repositories are fetched and how many.
func WithGitHubUser(username string, count int) AggregatorOption {
	return func(a *Aggregator) {
		a.username = username
		a.count = count
	}
}

// WithFetchTimeout bounds each source call independently.
func WithFetchTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithAggregatorLogger sets the logger used for build summaries.
func WithAggregatorLogger(l logger.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAggregator creates an Aggregator. Either source may be nil, in which
// case its sequences are always empty.
func NewAggregator(pinned PinnedSource, content ContentSource, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		pinned:  pinned,
		content: content,
		timeout: defaultFetchTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build runs the five fetches concurrently and assembles the view model.
// No branch can fail the join: a failed, slow or panicking source leaves
// its own sequence empty and the others untouched.
func (a *Aggregator) Build(ctx context.Context) model.ViewModel {
	start := time.Now()
	var view model.ViewModel

	var g errgroup.Group
	a.branch(ctx, &g, "github", func(ctx context.Context) int {
		if a.pinned == nil {
			return 0
		}
		view.PinnedRepos = a.pinned.PinnedRepositories(ctx, a.username, a.count)
		return len(view.PinnedRepos)
	})
	a.branch(ctx, &g, "experience", func(ctx context.Context) int {
		if a.content == nil {
			return 0
		}
		view.Experience = a.content.Experience(ctx)
		return len(view.Experience)
	})
	a.branch(ctx, &g, "skills", func(ctx context.Context) int {
		if a.content == nil {
			return 0
		}
		view.Skills = a.content.Skills(ctx)
		return len(view.Skills)
	})
	a.branch(ctx, &g, "projects", func(ctx context.Context) int {
		if a.content == nil {
			return 0
		}
		view.Projects = a.content.Projects(ctx)
		return len(view.Projects)
	})
	a.branch(ctx, &g, "academics", func(ctx context.Context) int {
		if a.content == nil {
			return 0
		}
		view.Academics = a.content.Academics(ctx)
		return len(view.Academics)
	})
	_ = g.Wait()

	view.Normalize()

	elapsed := time.Since(start)
	metrics.RecordViewBuild(float64(elapsed.Milliseconds()))
	a.logger.Info(ctx, "view model built",
		logger.Int("pinnedRepos", len(view.PinnedRepos)),
		logger.Int("experience", len(view.Experience)),
		logger.Int("skills", len(view.Skills)),
		logger.Int("projects", len(view.Projects)),
		logger.Int("academics", len(view.Academics)),
		logger.Duration("duration", elapsed),
	)
	return view
}

// branch starts one fetch under its own deadline. Each fetch writes a
// distinct field of the result, so branches share no mutable state.
func (a *Aggregator) branch(ctx context.Context, g *errgroup.Group, source string, fetch func(context.Context) int) {
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				metrics.RecordSourceFetch(source, metrics.OutcomeError, 0)
				a.logger.Error(ctx, "source panicked",
					logger.String("source", source),
					logger.Error(fmt.Errorf("panic: %v", r)))
			}
		}()

		n := fetch(fctx)
		metrics.UpdateSourceRecords(source, n)
		return nil
	})
}
