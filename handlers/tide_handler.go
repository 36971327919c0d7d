// handlers/tide_handler.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/gewnthar/mareas/backend/services"
)

const (
	msgMissingPort      = `El parámetro "puerto" es requerido.`
	msgTideFailure      = "No se pudieron obtener los datos de las mareas."
	msgMethodNotAllowed = "Method Not Allowed"
)

// TideReporter returns today's tide report for a port.
type TideReporter interface {
	GetTideReport(ctx context.Context, portID string) (models.TideReport, bool, error)
}

// TideHandler serves GET /mareas?puerto=<id>.
type TideHandler struct {
	reporter TideReporter
}

func NewTideHandler(reporter TideReporter) *TideHandler {
	return &TideHandler{reporter: reporter}
}

func (h *TideHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	puerto := r.URL.Query().Get("puerto")
	report, cached, err := h.reporter.GetTideReport(r.Context(), puerto)
	if errors.Is(err, services.ErrMissingPort) {
		respondWithError(w, http.StatusBadRequest, msgMissingPort)
		return
	}
	if err != nil {
		log.Printf("ERROR Handler: tide request for puerto=%q failed: %v", puerto, err)
		respondWithJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   msgTideFailure,
			Detalle: err.Error(),
		})
		return
	}

	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	respondWithJSON(w, http.StatusOK, report)
}
