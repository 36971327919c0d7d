// handlers/refresh_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gewnthar/mareas/backend/services"
)

const (
	msgRefreshOK     = "Actualización de mareas completada exitosamente."
	msgRefreshFailed = "Ocurrió un error durante la actualización de mareas."
)

// Refresher runs one scheduled tide refresh.
type Refresher interface {
	Refresh(ctx context.Context) (services.RefreshResult, error)
}

// RefreshHandler is the scheduled trigger for the bulk tide refresh.
// Cron schedulers call it with GET; POST is accepted for manual runs.
type RefreshHandler struct {
	refresher Refresher
	timeout   time.Duration
}

func NewRefreshHandler(refresher Refresher, timeout time.Duration) *RefreshHandler {
	return &RefreshHandler{refresher: refresher, timeout: timeout}
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		respondWithText(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	log.Println("Handler: Starting scheduled job: tide update...")
	result, err := h.refresher.Refresh(ctx)
	if err != nil {
		log.Printf("ERROR Handler: Scheduled job failed (run %s, %d/%d zones): %v", result.RunID, result.ZonesProcessed, result.ZonesTotal, err)
		respondWithText(w, http.StatusInternalServerError, msgRefreshFailed)
		return
	}

	log.Printf("Handler: Scheduled job completed (run %s, %d zones).", result.RunID, result.ZonesProcessed)
	respondWithText(w, http.StatusOK, msgRefreshOK)
}
