// Package hud provides a client for the HUD Fair Market Rent API.
package hud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the HUD USER API.
	DefaultBaseURL = "https://www.huduser.gov/hudapi/public"

	// ProviderName identifies this provider.
	ProviderName = "hud"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the HUD client.
type ClientConfig struct {
	// Token is the HUD USER API access token.
	Token string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// Client is a HUD Fair Market Rent API client.
type Client struct {
	token      string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new HUD client.
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
			MaxInterval:     5 * time.Second,
		})
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// API response types (from the HUD USER API).

type fmrResponse struct {
	Data fmrData `json:"data"`
}

type fmrData struct {
	BasicData fmrBasicData `json:"basicdata"`
}

type fmrBasicData struct {
	Efficiency   float64 `json:"Efficiency"`
	OneBedroom   float64 `json:"One-Bedroom"`
	TwoBedroom   float64 `json:"Two-Bedroom"`
	ThreeBedroom float64 `json:"Three-Bedroom"`
	FourBedroom  float64 `json:"Four-Bedroom"`
}

// FairMarketRent fetches the fair market rent for a postal code and
// bedroom count.
func (c *Client) FairMarketRent(ctx context.Context, zipCode string, bedrooms int) (float64, error) {
	reqURL := fmt.Sprintf("%s/fmr/data/%s", c.baseURL, zipCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", cost.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, cost.ErrNoFMRData
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %d", cost.ErrProviderUnavailable, resp.StatusCode)
	}

	var result fmrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode fmr response: %w", err)
	}

	rent := rentForBedrooms(result.Data.BasicData, bedrooms)
	if rent <= 0 {
		return 0, cost.ErrNoFMRData
	}
	return rent, nil
}

func rentForBedrooms(d fmrBasicData, bedrooms int) float64 {
	switch bedrooms {
	case 0:
		return d.Efficiency
	case 1:
		return d.OneBedroom
	case 2:
		return d.TwoBedroom
	case 3:
		return d.ThreeBedroom
	default:
		return d.FourBedroom
	}
}

// Ensure Client implements the cost rent provider interface.
var _ cost.RentProvider = (*Client)(nil)
