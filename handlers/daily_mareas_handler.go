// handlers/daily_mareas_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gewnthar/mareas/backend/database"
	"github.com/gewnthar/mareas/backend/models"
)

// DailyMareasReader reads the documents written by the scheduled refresh.
type DailyMareasReader interface {
	GetDailyMareas(ctx context.Context, zoneID string) (*models.DailyMareaDoc, error)
}

// GetDailyMareasHandler returns the stored extremes for a zone.
// Expects GET /api/mareas-diarias?zona=<id>
func GetDailyMareasHandler(reader DailyMareasReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondWithError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}

		zona := r.URL.Query().Get("zona")
		if zona == "" {
			respondWithError(w, http.StatusBadRequest, `El parámetro "zona" es requerido.`)
			return
		}

		doc, err := reader.GetDailyMareas(r.Context(), zona)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, fmt.Sprintf("No hay mareas guardadas para la zona %s.", zona))
			return
		}
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Error:   "No se pudieron leer las mareas guardadas.",
				Detalle: err.Error(),
			})
			return
		}

		respondWithJSON(w, http.StatusOK, doc)
	}
}
