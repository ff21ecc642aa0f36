package api

import (
	"net/http"
)

// SkillsHandler serves skill categorization.
type SkillsHandler struct {
	deps Dependencies
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(deps Dependencies) *SkillsHandler {
	return &SkillsHandler{deps: deps}
}

type classifyResponse struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

// HandleCategories handles GET /api/skills/categories requests.
func (h *SkillsHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.SkillCategories(r.Context()))
}

// HandleClassify handles GET /api/skills/classify?label=... requests.
// Classification is total: a missing or blank label gets the fallback category.
func (h *SkillsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	writeJSON(w, http.StatusOK, classifyResponse{Label: label, Category: h.deps.Classify(label)})
}
