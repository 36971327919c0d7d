// services/zone_seed_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/gewnthar/mareas/backend/scraper"
)

// ZoneWriter stores zone registry entries.
type ZoneWriter interface {
	UpsertZones(ctx context.Context, zones []models.Zone) error
}

// SeedZones loads a zones CSV from a local path or an http(s) URL into the registry.
// It returns the number of zones written.
func SeedZones(ctx context.Context, source string, store ZoneWriter) (int, error) {
	if source == "" {
		return 0, fmt.Errorf("no zones CSV source configured")
	}
	log.Printf("Service: Seeding zone registry from %s\n", source)

	localPath := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		tmpDir, err := os.MkdirTemp("", "mareas-zones-")
		if err != nil {
			return 0, fmt.Errorf("failed to create temp dir for zones CSV: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(tmpDir); err != nil {
				log.Printf("ERROR Service: Failed to remove temporary dir %s: %v\n", tmpDir, err)
			}
		}()

		localPath = filepath.Join(tmpDir, "zonas_marea.csv")
		if err := scraper.DownloadFile(ctx, source, localPath); err != nil {
			return 0, fmt.Errorf("failed to download zones CSV: %w", err)
		}
	}

	file, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open zones CSV %s: %w", localPath, err)
	}
	defer file.Close()

	zones, err := scraper.ParseZonesCsv(file)
	if err != nil {
		return 0, fmt.Errorf("failed to parse zones CSV from %s: %w", source, err)
	}

	if err := store.UpsertZones(ctx, zones); err != nil {
		return 0, fmt.Errorf("failed to save zones from %s: %w", source, err)
	}

	log.Printf("Service: Zone registry seeded with %d zones.\n", len(zones))
	return len(zones), nil
}
