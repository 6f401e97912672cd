package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the Open-Meteo geocoding API. The API is keyless.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new geocoding client. An empty baseURL selects the
// public Open-Meteo endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Search resolves a city name to coordinates
func (c *Client) Search(ctx context.Context, name, countryCode string) (*Result, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("geocode: name is required")
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "10")
	q.Set("language", "en")
	q.Set("format", "json")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocode: API error %d: %s", resp.StatusCode, string(raw))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("geocode: failed to decode response: %w", err)
	}

	// The API has no server-side country filter worth relying on, so the
	// first match passing the optional filter wins.
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	for _, r := range result.Results {
		if countryCode == "" || strings.EqualFold(r.CountryCode, countryCode) {
			match := r
			return &match, nil
		}
	}

	return nil, ErrNotFound
}
