// scraper/shoa_client.go
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gewnthar/mareas/backend/models"
)

// ShoaClient fetches per-port tide table pages from the SHOA website.
type ShoaClient struct {
	baseURL       string
	userAgent     string
	tableSelector string
	httpClient    *http.Client
}

// NewShoaClient creates a client for baseURL/<port-id> pages.
// userAgent is sent on every request; SHOA rejects some default client values.
func NewShoaClient(baseURL, userAgent, tableSelector string, httpClient *http.Client) *ShoaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tableSelector == "" {
		tableSelector = DefaultTableSelector
	}
	return &ShoaClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		userAgent:     userAgent,
		tableSelector: tableSelector,
		httpClient:    httpClient,
	}
}

// PortURL returns the tide table page URL for a port.
func (c *ShoaClient) PortURL(portID string) string {
	return c.baseURL + "/" + url.PathEscape(portID)
}

// FetchTidePage issues a single GET for the port page and returns the raw body.
// There are no retries; the deadline comes from ctx.
func (c *ShoaClient) FetchTidePage(ctx context.Context, portID string) ([]byte, error) {
	pageURL := c.PortURL(portID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{Op: "shoa", URL: pageURL, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "shoa", URL: pageURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{
			Op:         "shoa",
			URL:        pageURL,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", res.Status),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{Op: "shoa", URL: pageURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// FetchTideEvents fetches the port page and parses its tide table.
func (c *ShoaClient) FetchTideEvents(ctx context.Context, portID string) ([]models.TideEvent, error) {
	log.Printf("Scraper: Fetching SHOA tide table for %s from %s\n", portID, c.PortURL(portID))

	body, err := c.FetchTidePage(ctx, portID)
	if err != nil {
		return nil, err
	}

	events, err := ParseTideTable(bytes.NewReader(body), c.tableSelector)
	if err != nil {
		log.Printf("WARN Scraper: %s page for %s did not match the expected structure: %v", c.PortURL(portID), portID, err)
		return nil, err
	}

	log.Printf("Scraper: Parsed %d tide events for %s\n", len(events), portID)
	return events, nil
}
