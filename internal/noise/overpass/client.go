// Package overpass provides a client for the OpenStreetMap Overpass API,
// used to fetch road segments around a coordinate.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/provider/resilience"
	"github.com/movewise/movewise/pkg/geo"
)

const (
	// DefaultBaseURL is the public Overpass API interpreter endpoint.
	DefaultBaseURL = "https://overpass-api.de/api/interpreter"

	// ProviderName identifies this provider.
	ProviderName = "overpass"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Overpass client.
type ClientConfig struct {
	// BaseURL is the interpreter endpoint (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 30s). Overpass
	// queries are slow.
	Timeout time.Duration
}

// Client is an Overpass API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Overpass client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		})
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// API response types (from the Overpass API).

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Tags  map[string]string `json:"tags"`
	Nodes []int64           `json:"nodes"`
}

// NearbyRoads fetches all tagged highway ways within radiusMeters of the
// coordinate and reports each way's closest approach to it.
func (c *Client) NearbyRoads(ctx context.Context, lat, lon, radiusMeters float64) ([]noise.Road, error) {
	query := fmt.Sprintf(`[out:json];
(
  way["highway"](around:%.0f,%f,%f);
);
out body;
>;
out skel qt;`, radiusMeters, lat, lon)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", noise.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", noise.ErrProviderUnavailable, resp.StatusCode)
	}

	var result overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %s", noise.ErrMalformedResponse, err.Error())
	}

	return roadsFromElements(result.Elements, lat, lon), nil
}

func roadsFromElements(elements []overpassElement, lat, lon float64) []noise.Road {
	nodes := make(map[int64]overpassElement)
	for _, el := range elements {
		if el.Type == "node" {
			nodes[el.ID] = el
		}
	}

	center := geo.Point{Lat: lat, Lon: lon}
	var roads []noise.Road
	for _, el := range elements {
		if el.Type != "way" {
			continue
		}
		class := el.Tags["highway"]
		if class == "" {
			continue
		}

		minDistance := -1.0
		for _, nodeID := range el.Nodes {
			node, ok := nodes[nodeID]
			if !ok {
				continue
			}
			d := geo.HaversineMiles(center, geo.Point{Lat: node.Lat, Lon: node.Lon})
			if minDistance < 0 || d < minDistance {
				minDistance = d
			}
		}
		if minDistance < 0 {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = "Unnamed Road"
		}
		roads = append(roads, noise.Road{
			Class:         class,
			Name:          name,
			DistanceMiles: minDistance,
		})
	}
	return roads
}

// Ensure Client implements the noise road provider interface.
var _ noise.RoadProvider = (*Client)(nil)
