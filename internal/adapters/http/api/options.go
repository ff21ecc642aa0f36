package api

import (
	"time"

	"github.com/okian/folio/internal/domain/theme"
	"github.com/okian/folio/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRevalidateToken sets the bearer token POST /api/revalidate requires.
// An empty token disables the endpoint.
func WithRevalidateToken(token string) Option {
	return func(s *Server) {
		s.revalidateToken = token
	}
}

// WithMaxAge sets the Cache-Control max-age of page responses.
func WithMaxAge(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.maxAge = d
		}
	}
}

// WithThemeDefault sets the theme used when a visitor has no stored preference.
func WithThemeDefault(m theme.Mode) Option {
	return func(s *Server) {
		s.themeDefault = m
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
