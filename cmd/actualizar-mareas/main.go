// Package main is the Lambda entrypoint for the scheduled tide refresh.
//
// An EventBridge rule invokes it once a day. It runs the same refresh as the
// /actualizar-mareas endpoint: the first zones of the registry are fetched from
// Stormglass concurrently and their extremes overwrite the stored documents.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gewnthar/mareas/backend/config"
	"github.com/gewnthar/mareas/backend/database"
	"github.com/gewnthar/mareas/backend/scraper"
	"github.com/gewnthar/mareas/backend/services"
)

const (
	msgRefreshOK = "Actualización de mareas completada exitosamente."
)

// refresher is satisfied by *services.RefreshService.
type refresher interface {
	Refresh(ctx context.Context) (services.RefreshResult, error)
}

func main() {
	log.Println("Refresh Lambda initializing (cold start)")

	if err := config.LoadConfig(""); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig

	// The connection outlives single invocations; Lambda reuses warm containers.
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	stormglass := scraper.NewStormglassClient(cfg.Stormglass.BaseURL, cfg.Stormglass.APIKey, &http.Client{})
	svc := services.NewRefreshService(
		database.NewZoneStore(db),
		stormglass,
		database.NewTideStore(db),
		database.NewRefreshRunStore(db),
		services.RefreshOptions{MaxZones: cfg.Refresh.MaxZones, Concurrency: cfg.Refresh.Concurrency},
	)

	log.Printf("Refresh Lambda initialized (max zones %d, concurrency %d)", cfg.Refresh.MaxZones, cfg.Refresh.Concurrency)
	lambda.Start(newHandler(svc))
}

// newHandler wraps Refresh for lambda.Start. The scheduled event payload is ignored.
func newHandler(svc refresher) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		log.Println("Refresh Lambda invoked")

		result, err := svc.Refresh(ctx)
		if err != nil {
			log.Printf("ERROR Lambda: refresh run %s failed after %d/%d zones: %v", result.RunID, result.ZonesProcessed, result.ZonesTotal, err)
			return "", fmt.Errorf("tide refresh failed: %w", err)
		}

		log.Printf("Lambda: refresh run %s stored %d zones", result.RunID, result.ZonesProcessed)
		return msgRefreshOK, nil
	}
}
