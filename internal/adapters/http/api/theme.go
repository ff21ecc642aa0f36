package api

import (
	"net/http"
	"time"

	"github.com/okian/folio/internal/domain/theme"
)

const themeCookieMaxAge = 365 * 24 * time.Hour

// ThemeHandler reads and toggles the visitor's theme preference, which is
// kept in a cookie named after theme.StorageKey.
type ThemeHandler struct {
	fallback theme.Mode
}

// NewThemeHandler creates a theme handler with the configured default mode.
func NewThemeHandler(fallback theme.Mode) *ThemeHandler {
	return &ThemeHandler{fallback: fallback}
}

// HandleGet handles GET /api/theme requests.
func (h *ThemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.current(r))
}

// HandleToggle handles POST /api/theme/toggle requests.
func (h *ThemeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	next := h.current(r).Toggle()
	http.SetCookie(w, &http.Cookie{
		Name:     theme.StorageKey,
		Value:    string(next.Mode),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, next)
}

func (h *ThemeHandler) current(r *http.Request) theme.Preference {
	persisted := ""
	if c, err := r.Cookie(theme.StorageKey); err == nil {
		persisted = c.Value
	}
	return theme.Resolve(persisted, h.fallback)
}
