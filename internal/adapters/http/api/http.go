// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/internal/domain/theme"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Page returns the current page; it never fails.
	Page(ctx context.Context) model.Page

	// View returns only the five-section view model of the current page.
	View(ctx context.Context) model.ViewModel

	// SkillCategories returns the current page's skill buckets.
	SkillCategories(ctx context.Context) []model.CategoryBucket

	// Classify maps one skill label to its display category.
	Classify(label string) string

	// Revalidate forces a rebuild and returns the new page.
	Revalidate(ctx context.Context) model.Page
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	pageHandler       *PageHandler
	skillsHandler     *SkillsHandler
	revalidateHandler *RevalidateHandler
	themeHandler      *ThemeHandler

	revalidateToken string
	maxAge          time.Duration
	themeDefault    theme.Mode
	logger          logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxAge:       60 * time.Second,
		themeDefault: theme.Dark,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.pageHandler = NewPageHandler(deps, s.maxAge)
	s.skillsHandler = NewSkillsHandler(deps)
	s.revalidateHandler = NewRevalidateHandler(deps, s.revalidateToken, s.logger)
	s.themeHandler = NewThemeHandler(s.themeDefault)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", s.pageHandler.HandlePage)
		r.Get("/view", s.pageHandler.HandleView)
		r.Get("/skills/categories", s.skillsHandler.HandleCategories)
		r.Get("/skills/classify", s.skillsHandler.HandleClassify)
		r.Post("/revalidate", s.revalidateHandler.HandleRevalidate)
		r.Get("/theme", s.themeHandler.HandleGet)
		r.Post("/theme/toggle", s.themeHandler.HandleToggle)
	})
}

// NewRouter builds a chi router with the standard middleware stack and
// every API route registered.
func (s *Server) NewRouter(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})

	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
