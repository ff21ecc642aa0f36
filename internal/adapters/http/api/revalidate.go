package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/okian/folio/pkg/logger"
)

// RevalidateHandler forces a page rebuild on demand.
type RevalidateHandler struct {
	deps   Dependencies
	token  string
	logger logger.Logger
}

// NewRevalidateHandler creates a revalidate handler. An empty token disables it.
func NewRevalidateHandler(deps Dependencies, token string, l logger.Logger) *RevalidateHandler {
	return &RevalidateHandler{deps: deps, token: token, logger: l}
}

type revalidateResponse struct {
	Revalidated bool      `json:"revalidated"`
	BuildID     string    `json:"buildId"`
	BuiltAt     time.Time `json:"builtAt"`
}

// HandleRevalidate handles POST /api/revalidate requests.
func (h *RevalidateHandler) HandleRevalidate(w http.ResponseWriter, r *http.Request) {
	if h.token == "" {
		writeError(w, http.StatusForbidden, "forbidden", ErrRevalidateDisabled)
		return
	}

	presented, ok := bearerToken(r)
	if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) != 1 {
		h.logger.Warn(r.Context(), "revalidate rejected", logger.String("remote", r.RemoteAddr))
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	page := h.deps.Revalidate(r.Context())
	writeJSON(w, http.StatusOK, revalidateResponse{
		Revalidated: true,
		BuildID:     page.BuildID,
		BuiltAt:     page.BuiltAt,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
