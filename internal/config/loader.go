package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/folio/internal/domain/theme"
)

// Environment variable names.
const (
	EnvPrefix     = "FOLIO_"
	EnvConfigFile = "FOLIO_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FOLIO_CONFIG is set, or path is non-empty
//  3. env (prefix FOLIO_)
func Load(_ context.Context, path ...string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	configPath := os.Getenv(EnvConfigFile)
	if len(path) > 0 && path[0] != "" {
		configPath = path[0]
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, configPath, err)
		}
	}

	// FOLIO_GITHUB_TOKEN -> github_token (flat keys, underscores preserved)
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PinnedCount < 0 || c.PinnedCount > 6:
		return fmt.Errorf("%w: pinned_count must be between 0 and 6, got %d", ErrInvalidConfig, c.PinnedCount)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.RevalidateSeconds < 0:
		return fmt.Errorf("%w: revalidate_seconds must not be negative", ErrInvalidConfig)
	}
	if _, ok := theme.Parse(c.ThemeDefault); !ok {
		return fmt.Errorf("%w: theme_default must be light or dark, got %q", ErrInvalidConfig, c.ThemeDefault)
	}
	for i, sc := range c.SkillCategories {
		if strings.TrimSpace(sc.Name) == "" {
			return fmt.Errorf("%w: skill_categories[%d] has no name", ErrInvalidConfig, i)
		}
	}
	return nil
}
