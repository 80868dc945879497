// Package distancematrix provides a Google Distance Matrix API client.
package distancematrix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Distance Matrix API.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix"

	// ProviderName identifies this provider.
	ProviderName = "distancematrix"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Distance Matrix client.
type ClientConfig struct {
	// APIKey is the Google Maps API key.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// Client is a Distance Matrix API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Distance Matrix client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      2,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     3 * time.Second,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// API response types (from the Distance Matrix API).

type matrixResponse struct {
	Status string      `json:"status"`
	Rows   []matrixRow `json:"rows"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixElement struct {
	Status   string       `json:"status"`
	Duration *matrixValue `json:"duration"`
	Distance *matrixText  `json:"distance"`
}

type matrixValue struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type matrixText struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Estimate fetches the commute from origin coordinates to a work address.
func (c *Client) Estimate(ctx context.Context, originLat, originLon float64, workAddress string, mode commute.Mode) (*commute.Info, error) {
	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", originLat, originLon))
	params.Set("destinations", workAddress)
	params.Set("mode", string(mode))
	params.Set("departure_time", "now")
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", commute.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", commute.ErrProviderUnavailable, resp.StatusCode)
	}

	var result matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if len(result.Rows) == 0 || len(result.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", commute.ErrProviderUnavailable)
	}

	element := result.Rows[0].Elements[0]
	if element.Status != "OK" || element.Duration == nil {
		return nil, commute.ErrNoRoute
	}

	minutes := element.Duration.Value / 60
	info := &commute.Info{
		DurationMinutes: &minutes,
		Mode:            mode,
		Description:     fmt.Sprintf("Your commute will be approximately %d minutes by %s.", minutes, mode),
		IsRealData:      true,
	}
	if element.Distance != nil {
		info.Distance = element.Distance.Text
	}

	return info, nil
}

// Ensure Client implements the commute provider interface.
var _ commute.Provider = (*Client)(nil)
