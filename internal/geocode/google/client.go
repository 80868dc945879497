// Package google provides a client for the Google Geocoding API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/movewise/movewise/internal/geocode"
	"github.com/movewise/movewise/internal/provider/resilience"
	"github.com/movewise/movewise/pkg/geo"
)

const (
	// DefaultBaseURL is the base URL for the Geocoding API.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode"

	// ProviderName identifies this provider.
	ProviderName = "googlegeocode"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	// APIKey is the Google Maps API key.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s).
	Timeout time.Duration
}

// Client is a Google Geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new geocoding client.
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

// API response types (from the Geocoding API).

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	AddressComponents []addressComponent `json:"address_components"`
}

type addressComponent struct {
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geocode resolves an address to its first candidate coordinate.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Point, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	result, err := c.query(ctx, params)
	if err != nil {
		return geo.Point{}, err
	}
	if len(result.Results) == 0 {
		return geo.Point{}, fmt.Errorf("%w: %q", geocode.ErrNotFound, address)
	}

	loc := result.Results[0].Geometry.Location
	return geo.Point{Lat: loc.Lat, Lon: loc.Lng}, nil
}

// PostalCode reverse-geocodes a coordinate and scans the candidates for
// a postal code component.
func (c *Client) PostalCode(ctx context.Context, p geo.Point) (string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", p.Lat, p.Lon))
	params.Set("key", c.apiKey)

	result, err := c.query(ctx, params)
	if err != nil {
		return "", err
	}

	for _, r := range result.Results {
		for _, component := range r.AddressComponents {
			for _, t := range component.Types {
				if t == "postal_code" {
					return component.ShortName, nil
				}
			}
		}
	}
	return "", geocode.ErrNoPostalCode
}

func (c *Client) query(ctx context.Context, params url.Values) (*geocodeResponse, error) {
	reqURL := fmt.Sprintf("%s/json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", geocode.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", geocode.ErrProviderUnavailable, resp.StatusCode)
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	switch result.Status {
	case "OK", "ZERO_RESULTS":
		return &result, nil
	default:
		return nil, fmt.Errorf("%w: status %s", geocode.ErrProviderUnavailable, result.Status)
	}
}

// Ensure Client implements the geocoding provider interface.
var _ geocode.Provider = (*Client)(nil)
