// Package googleplaces provides a client for the Google Places Nearby
// Search API.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Places API.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// ProviderName identifies this provider.
	ProviderName = "googleplaces"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Places client.
type ClientConfig struct {
	// APIKey is the Google Maps API key.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s). Each amenity
	// type is a separate request, so these stay short.
	Timeout time.Duration
}

// Client is a Google Places API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Places client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      2,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// API response types (from the Places Nearby Search API).

type nearbyResponse struct {
	Status  string         `json:"status"`
	Results []nearbyResult `json:"results"`
}

type nearbyResult struct {
	Name     string `json:"name"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// NearbyPlaces searches for places of one type around a coordinate.
func (c *Client) NearbyPlaces(ctx context.Context, lat, lon float64, placeType string, radiusMeters int) ([]amenity.Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", amenity.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", amenity.ErrProviderUnavailable, resp.StatusCode)
	}

	var result nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %s", amenity.ErrMalformedResponse, err.Error())
	}

	switch result.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("%w: status %s", amenity.ErrProviderUnavailable, result.Status)
	}

	places := make([]amenity.Place, 0, len(result.Results))
	for _, r := range result.Results {
		places = append(places, amenity.Place{
			Name: r.Name,
			Lat:  r.Geometry.Location.Lat,
			Lon:  r.Geometry.Location.Lng,
		})
	}
	return places, nil
}

// Ensure Client implements the amenity provider interface.
var _ amenity.Provider = (*Client)(nil)
