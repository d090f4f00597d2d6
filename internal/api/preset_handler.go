package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/preset"
)

// PresetHandler serves the preset catalog.
type PresetHandler struct {
	catalog *preset.Catalog
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(catalog *preset.Catalog) *PresetHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for PresetHandler")
	}
	return &PresetHandler{catalog: catalog}
}

// GetPresets handles GET /presets/{exercise_type}. Unknown exercise types
// yield an empty list.
func (h *PresetHandler) GetPresets(w http.ResponseWriter, r *http.Request) {
	exerciseType := domain.ExerciseType(chi.URLParam(r, "exercise_type"))
	shared.RespondWithJSON(w, r, http.StatusOK, presetsToResponse(h.catalog.Lookup(exerciseType)))
}
