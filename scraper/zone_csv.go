// scraper/zone_csv.go
package scraper

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/jszwec/csvutil"
)

// ParseZonesCsv decodes a zone registry CSV with an "id,lat,lng" header.
func ParseZonesCsv(reader io.Reader) ([]models.Zone, error) {
	var zones []models.Zone

	// csvutil maps header names to the `csv:"..."` tags on models.Zone.
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for zones: %w", err)
	}

	if err := decoder.Decode(&zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones CSV data: %w", err)
	}

	for i := range zones {
		zones[i].ID = strings.TrimSpace(zones[i].ID)
		if zones[i].ID == "" {
			return nil, fmt.Errorf("zones CSV row %d has an empty id", i+1)
		}
	}

	log.Printf("Successfully parsed %d zones from CSV.\n", len(zones))
	return zones, nil
}

// downloadClient bounds a single file download.
var downloadClient = &http.Client{
	Timeout: 30 * time.Second,
}

// DownloadFile downloads url to localSavePath, creating parent directories as needed.
func DownloadFile(ctx context.Context, url string, localSavePath string) error {
	log.Printf("Attempting to download file from URL: %s to local path: %s\n", url, localSavePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build GET request for %s: %w", url, err)
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return &FetchError{Op: "download", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: "download", URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Successfully downloaded %s to %s\n", url, localSavePath)
	return nil
}
