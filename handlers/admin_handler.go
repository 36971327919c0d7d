// handlers/admin_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/gewnthar/mareas/backend/services"
)

// RunLister lists recent refresh runs.
type RunLister interface {
	ListRecentRuns(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

// AdminHandler groups the zone registry and refresh history endpoints.
type AdminHandler struct {
	zones           services.ZoneWriter
	runs            RunLister
	defaultZonesCSV string
}

func NewAdminHandler(zones services.ZoneWriter, runs RunLister, defaultZonesCSV string) *AdminHandler {
	return &AdminHandler{zones: zones, runs: runs, defaultZonesCSV: defaultZonesCSV}
}

// SeedZones loads a zones CSV into the registry.
// Expects POST /api/admin/seed-zones with an optional {"source": "<path or url>"} body.
func (h *AdminHandler) SeedZones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.SeedZonesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	source := req.Source
	if source == "" {
		source = h.defaultZonesCSV
	}
	if source == "" {
		respondWithError(w, http.StatusBadRequest, "No zones CSV source given and none configured")
		return
	}

	n, err := services.SeedZones(r.Context(), source, h.zones)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to seed zones: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Seeded %d zones from %s.", n, source),
		"zones":   n,
	})
}

// ListRuns returns recent scheduled refresh runs.
// Expects GET /api/admin/refresh-runs?limit=N
func (h *AdminHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid 'limit' query parameter")
			return
		}
		limit = n
	}

	runs, err := h.runs.ListRecentRuns(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list refresh runs: %v", err))
		return
	}
	if runs == nil {
		runs = []models.RefreshRun{}
	}
	respondWithJSON(w, http.StatusOK, runs)
}
