package api

import (
	"fmt"
	"net/http"
	"time"
)

// PageHandler serves the built page and its view model.
type PageHandler struct {
	deps   Dependencies
	maxAge time.Duration
}

// NewPageHandler creates a page handler. maxAge sets the Cache-Control header.
func NewPageHandler(deps Dependencies, maxAge time.Duration) *PageHandler {
	return &PageHandler{deps: deps, maxAge: maxAge}
}

// HandlePage handles GET /api/page requests.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	page := h.deps.Page(r.Context())
	h.cacheHeaders(w, page.BuildID)
	writeJSON(w, http.StatusOK, page)
}

// HandleView handles GET /api/view requests.
func (h *PageHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	page := h.deps.Page(r.Context())
	h.cacheHeaders(w, page.BuildID)
	writeJSON(w, http.StatusOK, page.View)
}

func (h *PageHandler) cacheHeaders(w http.ResponseWriter, buildID string) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.maxAge/time.Second)))
	if buildID != "" {
		w.Header().Set("X-Build-Id", buildID)
	}
}
