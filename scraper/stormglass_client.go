// scraper/stormglass_client.go
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxErrorBody bounds how much of an upstream error body is kept for logs.
const maxErrorBody = 512

// StormglassClient fetches tide extremes from the Stormglass marine API.
type StormglassClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStormglassClient creates a marine API client. apiKey goes in the Authorization header.
func NewStormglassClient(baseURL, apiKey string, httpClient *http.Client) *StormglassClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StormglassClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type extremesResponse struct {
	Data []json.RawMessage `json:"data"`
}

// FetchExtremes returns the raw extreme records for a point, in upstream order.
func (c *StormglassClient) FetchExtremes(ctx context.Context, lat, lng float64) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	requestURL := fmt.Sprintf("%s/v2/tide/extremes/point?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{Op: "stormglass", URL: requestURL, Err: err}
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "stormglass", URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Op:         "stormglass",
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var extremes extremesResponse
	if err := json.NewDecoder(resp.Body).Decode(&extremes); err != nil {
		return nil, &FetchError{Op: "stormglass", URL: requestURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if extremes.Data == nil {
		extremes.Data = []json.RawMessage{}
	}
	return extremes.Data, nil
}
