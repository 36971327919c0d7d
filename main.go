// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gewnthar/mareas/backend/cache"
	"github.com/gewnthar/mareas/backend/config"
	"github.com/gewnthar/mareas/backend/database"
	"github.com/gewnthar/mareas/backend/handlers"
	"github.com/gewnthar/mareas/backend/scraper"
	"github.com/gewnthar/mareas/backend/services"
)

func main() {
	log.Println("Starting mareas backend...")

	configPath := "backend/config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "" // let LoadConfig search the standard locations
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	log.Printf("Configuration loaded. Server port: %s, DB driver: %s", cfg.Server.Port, cfg.Database.Driver)
	log.Printf("SHOA tide tables: %s (User-Agent %q)", cfg.Shoa.BaseURL, cfg.Shoa.UserAgent)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB(db)

	zoneStore := database.NewZoneStore(db)
	tideStore := database.NewTideStore(db)
	runStore := database.NewRefreshRunStore(db)

	if cfg.Refresh.ZonesCSV != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		n, err := services.SeedZones(seedCtx, cfg.Refresh.ZonesCSV, zoneStore)
		cancel()
		if err != nil {
			// The registry may already be populated; keep serving.
			log.Printf("WARN: Could not seed zones from %s: %v", cfg.Refresh.ZonesCSV, err)
		} else {
			log.Printf("Zone registry seeded with %d zones.", n)
		}
	}

	// Deadlines come from the per-call contexts.
	httpClient := &http.Client{}

	shoa := scraper.NewShoaClient(cfg.Shoa.BaseURL, cfg.Shoa.UserAgent, cfg.Shoa.TableSelector, httpClient)
	tides := services.NewTideService(shoa, cache.NewDailyCache(), cfg.Shoa.FetchTimeout)

	if cfg.Stormglass.APIKey == "" {
		log.Println("WARN: STORMGLASS_API_KEY is not set; scheduled refreshes will be rejected upstream.")
	}
	stormglass := scraper.NewStormglassClient(cfg.Stormglass.BaseURL, cfg.Stormglass.APIKey, httpClient)
	refresher := services.NewRefreshService(zoneStore, stormglass, tideStore, runStore, services.RefreshOptions{
		MaxZones:    cfg.Refresh.MaxZones,
		Concurrency: cfg.Refresh.Concurrency,
	})

	router := handlers.NewRouter(handlers.Routes{
		Tide:        handlers.NewTideHandler(tides),
		Refresh:     handlers.NewRefreshHandler(refresher, cfg.Refresh.Timeout),
		DailyMareas: handlers.GetDailyMareasHandler(tideStore),
		Admin:       handlers.NewAdminHandler(zoneStore, runStore, cfg.Refresh.ZonesCSV),
		DB:          db,
	})

	serverAddr := ":" + cfg.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
