// handlers/routes.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports database health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Routes bundles the handlers mounted by NewRouter.
type Routes struct {
	Tide        *TideHandler
	Refresh     *RefreshHandler
	DailyMareas http.HandlerFunc
	Admin       *AdminHandler
	DB          Pinger
}

// NewRouter mounts every endpoint. Handlers check their own HTTP methods so
// wrong verbs get the JSON/text bodies API clients expect.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.HandleFunc("/api/health", healthHandler(rt.DB))

	r.Handle("/mareas", rt.Tide)
	r.Handle("/api/mareas", rt.Tide)

	r.Handle("/actualizar-mareas", rt.Refresh)
	r.Handle("/api/cron/actualizar-mareas", rt.Refresh)

	if rt.DailyMareas != nil {
		r.HandleFunc("/api/mareas-diarias", rt.DailyMareas)
	}
	if rt.Admin != nil {
		r.HandleFunc("/api/admin/seed-zones", rt.Admin.SeedZones)
		r.HandleFunc("/api/admin/refresh-runs", rt.Admin.ListRuns)
	}
	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				log.Printf("Health check failed: DB ping error: %v", err)
				http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
				return
			}
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "mareas backend is healthy"}`)
	}
}
