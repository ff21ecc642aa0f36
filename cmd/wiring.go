package main

import (
	"context"

	"github.com/okian/folio/internal/adapters/cache"
	"github.com/okian/folio/internal/adapters/contentstore"
	"github.com/okian/folio/internal/adapters/github"
	service "github.com/okian/folio/internal/app"
	"github.com/okian/folio/internal/config"
	"github.com/okian/folio/internal/domain/classify"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
)

// newPageService assembles the adapters, classifier and cache from cfg.
func newPageService(ctx context.Context, cfg *config.Config, log logger.Logger) *service.Service {
	pinned := github.New(
		github.WithEndpoint(cfg.GitHubEndpoint),
		github.WithToken(cfg.GitHubToken),
		github.WithLogger(log.Named("github")),
	)

	contentOpts := []contentstore.Option{
		contentstore.WithProjectID(cfg.ContentProjectID),
		contentstore.WithDataset(cfg.ContentDataset),
		contentstore.WithAPIVersion(cfg.ContentAPIVersion),
		contentstore.WithToken(cfg.ContentToken),
		contentstore.WithCDN(cfg.ContentUseCDN),
		contentstore.WithLogger(log.Named("contentstore")),
	}
	if cfg.ContentBaseURL != "" {
		contentOpts = append(contentOpts, contentstore.WithBaseURL(cfg.ContentBaseURL))
	}
	content := contentstore.New(contentOpts...)

	agg := service.NewAggregator(pinned, content,
		service.WithGitHubUser(cfg.GitHubUsername, cfg.PinnedCount),
		service.WithFetchTimeout(cfg.FetchTimeout()),
		service.WithAggregatorLogger(log.Named("aggregator")),
	)

	return service.New(agg,
		service.WithCache(newPageCache(ctx, cfg, log)),
		service.WithClassifier(newClassifier(cfg)),
		service.WithRevalidateInterval(cfg.RevalidateInterval()),
		service.WithAuthor(model.Author{
			Name:           cfg.AuthorName,
			Email:          cfg.AuthorEmail,
			ImageURL:       cfg.AuthorImage,
			GitHubHandle:   cfg.GitHubHandle,
			LinkedInHandle: cfg.LinkedInHandle,
		}),
		service.WithLogger(log.Named("page")),
	)
}

// newPageCache selects Redis when an address is configured, memory otherwise.
func newPageCache(ctx context.Context, cfg *config.Config, log logger.Logger) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}
	return cache.NewRedis(ctx,
		cache.WithAddr(cfg.RedisAddr),
		cache.WithPassword(cfg.RedisPassword),
		cache.WithDB(cfg.RedisDB),
		cache.WithLogger(log.Named("cache")),
	)
}

func newClassifier(cfg *config.Config) *classify.Classifier {
	rules := make([]classify.Rule, 0, len(cfg.SkillCategories))
	for _, c := range cfg.SkillCategories {
		rules = append(rules, classify.Rule{Category: classify.Category(c.Name), Patterns: c.Patterns})
	}
	return classify.New(
		classify.WithRules(rules),
		classify.WithDefault(classify.Category(cfg.DefaultSkillCategory)),
	)
}
