// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load layers file and env on top.
//   - Secrets (tokens) are opaque strings; an empty token is valid and only
//     means the upstream call is made unauthenticated.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// GitHub GraphQL source.
	GitHubEndpoint string `koanf:"github_endpoint"`
	GitHubToken    string `koanf:"github_token"`
	GitHubUsername string `koanf:"github_username"`
	PinnedCount    int    `koanf:"pinned_count"`

	// Content store (GROQ query API).
	ContentProjectID  string `koanf:"content_project_id"`
	ContentDataset    string `koanf:"content_dataset"`
	ContentAPIVersion string `koanf:"content_api_version"`
	ContentToken      string `koanf:"content_token"`
	ContentUseCDN     bool   `koanf:"content_use_cdn"`
	// ContentBaseURL overrides the host derived from the project id.
	ContentBaseURL string `koanf:"content_base_url"`

	// FetchTimeoutMS bounds every upstream call.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RevalidateSeconds is how long a built page is served before rebuilding.
	RevalidateSeconds int `koanf:"revalidate_seconds"`
	// RevalidateToken guards POST /api/revalidate; empty disables the endpoint.
	RevalidateToken string `koanf:"revalidate_token"`

	// Redis page cache; empty address selects the in-memory cache.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// ThemeDefault is used when the visitor has no stored preference.
	ThemeDefault string `koanf:"theme_default"`

	// Author profile.
	AuthorName     string `koanf:"author_name"`
	AuthorEmail    string `koanf:"author_email"`
	AuthorImage    string `koanf:"author_image"`
	GitHubHandle   string `koanf:"github_handle"`
	LinkedInHandle string `koanf:"linkedin_handle"`

	// SkillCategories overrides the built-in classifier table when non-empty.
	SkillCategories      []SkillCategory `koanf:"skill_categories"`
	DefaultSkillCategory string          `koanf:"default_skill_category"`
}

// SkillCategory is one classifier rule: a category and its substrings.
type SkillCategory struct {
	Name     string   `koanf:"name"`
	Patterns []string `koanf:"patterns"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		GitHubEndpoint:       "https://api.github.com/graphql",
		PinnedCount:          6,
		ContentDataset:       "production",
		ContentAPIVersion:    "2024-01-01",
		ContentUseCDN:        true,
		FetchTimeoutMS:       10_000,
		RevalidateSeconds:    60,
		ThemeDefault:         "dark",
		DefaultSkillCategory: "Frontend",
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// RevalidateInterval returns RevalidateSeconds as a duration.
func (c *Config) RevalidateInterval() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}
