// Package fbi provides a client for the FBI Crime Data Explorer API.
// The API reports annual totals per agency; the client scales them to
// the 30-day window and expands them into individual incidents.
package fbi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/provider/resilience"
	"github.com/movewise/movewise/pkg/geo"
)

const (
	// DefaultBaseURL is the base URL for the Crime Data Explorer API.
	DefaultBaseURL = "https://api.usa.gov/crime/fbi/cde"

	// ProviderName identifies this provider.
	ProviderName = "fbi"

	// yearsToTry is how many recent years are probed for published data.
	yearsToTry = 3
)

// agencyBox maps a metro bounding box to its police agency ORI.
type agencyBox struct {
	box geo.Box
	ori string
}

var agencyBoxes = []agencyBox{
	{geo.Box{LatMin: 40.5, LatMax: 41.0, LonMin: -74.5, LonMax: -73.5}, "NY0030000"},   // NYPD
	{geo.Box{LatMin: 33.5, LatMax: 34.5, LonMin: -118.5, LonMax: -117.5}, "CA0190000"}, // LAPD
	{geo.Box{LatMin: 41.5, LatMax: 42.5, LonMin: -88.0, LonMax: -87.0}, "IL0160000"},   // Chicago PD
	{geo.Box{LatMin: 33.5, LatMax: 34.0, LonMin: -84.5, LonMax: -84.0}, "GA0210000"},   // Atlanta PD
	{geo.Box{LatMin: 37.5, LatMax: 38.0, LonMin: -122.5, LonMax: -122.0}, "CA0750000"}, // SFPD
	{geo.Box{LatMin: 29.5, LatMax: 30.0, LonMin: -95.5, LonMax: -95.0}, "TX2200000"},   // Houston PD
	{geo.Box{LatMin: 47.0, LatMax: 48.0, LonMin: -122.5, LonMax: -122.0}, "WA8200000"}, // Seattle PD
	{geo.Box{LatMin: 25.5, LatMax: 26.0, LonMin: -80.5, LonMax: -80.0}, "FL0130000"},   // Miami PD
	{geo.Box{LatMin: 33.0, LatMax: 34.0, LonMin: -112.5, LonMax: -111.5}, "AZ0070000"}, // Phoenix PD
	{geo.Box{LatMin: 42.0, LatMax: 43.0, LonMin: -71.5, LonMax: -70.5}, "MA0070000"},   // Boston PD
}

// Offense codes queried per agency.
const (
	codeAssault      = "ASS"
	codeBurglary     = "BUR"
	codeLarceny      = "LAR"
	codeVehicleTheft = "MVT"
	codeRobbery      = "ROB"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the FBI client.
type ClientConfig struct {
	// APIKey is the api.usa.gov key. Optional for low request volumes.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Generator expands annual totals into incidents. Defaults to a
	// time-seeded generator.
	Generator *crime.Generator

	// Now is injectable for tests (defaults to time.Now).
	Now func() time.Time
}

// Client is an FBI Crime Data Explorer client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	gen        *crime.Generator
	now        func() time.Time
}

// NewClient creates a new FBI client.
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

	gen := cfg.Generator
	if gen == nil {
		gen = crime.NewGenerator(nil)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		gen:        gen,
		now:        now,
	}
}

// summaryEntry is one month's reported count in the API response.
type summaryEntry struct {
	Actual int `json:"actual"`
}

// Incidents resolves the coordinate to a reporting agency, fetches its
// most recent annual offense totals, and expands them into a 30-day
// incident set.
func (c *Client) Incidents(ctx context.Context, lat, lon float64, days int) (*crime.IncidentSet, error) {
	ori := oriForPoint(geo.Point{Lat: lat, Lon: lon})
	if ori == "" {
		return nil, crime.ErrNoAgency
	}

	currentYear := c.now().Year()
	for offset := 1; offset <= yearsToTry; offset++ {
		year := currentYear - offset
		totals, err := c.fetchAnnualTotals(ctx, ori, year)
		if err != nil {
			return nil, err
		}
		if totals == nil {
			continue
		}

		monthly := scaleTotals(*totals, days)
		return &crime.IncidentSet{
			Incidents: c.gen.FromTotals(monthly, lat, lon, days),
			Source:    fmt.Sprintf("FBI UCR %d (official)", year),
		}, nil
	}
	return nil, fmt.Errorf("%w: no published totals for %s", crime.ErrProviderUnavailable, ori)
}

// fetchAnnualTotals returns nil without error when the agency has no
// data for the year.
func (c *Client) fetchAnnualTotals(ctx context.Context, ori string, year int) (*annualTotals, error) {
	totals := annualTotals{}
	fields := []struct {
		code string
		dst  *int
	}{
		{codeAssault, &totals.Assault},
		{codeBurglary, &totals.Burglary},
		{codeLarceny, &totals.Larceny},
		{codeVehicleTheft, &totals.VehicleTheft},
		{codeRobbery, &totals.Robbery},
	}

	anyData := false
	for _, f := range fields {
		count, found, err := c.fetchOffenseTotal(ctx, ori, f.code, year)
		if err != nil {
			return nil, err
		}
		if found {
			anyData = true
			*f.dst = count
		}
	}
	if !anyData {
		return nil, nil
	}
	return &totals, nil
}

func (c *Client) fetchOffenseTotal(ctx context.Context, ori, code string, year int) (int, bool, error) {
	params := url.Values{}
	params.Set("from", fmt.Sprintf("01-%d", year))
	params.Set("to", fmt.Sprintf("12-%d", year))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/summarized/agency/%s/%s?%s", c.baseURL, ori, code, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s", crime.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("%w: unexpected status %d", crime.ErrProviderUnavailable, resp.StatusCode)
	}

	var entries []summaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0, false, fmt.Errorf("%w: %s", crime.ErrMalformedResponse, err.Error())
	}
	if len(entries) == 0 {
		return 0, false, nil
	}

	total := 0
	for _, e := range entries {
		total += e.Actual
	}
	return total, true, nil
}

type annualTotals struct {
	Assault      int
	Burglary     int
	Larceny      int
	VehicleTheft int
	Robbery      int
}

func scaleTotals(t annualTotals, days int) crime.MonthlyTotals {
	ratio := float64(days) / 365.0
	return crime.MonthlyTotals{
		Assault:      int(float64(t.Assault) * ratio),
		Burglary:     int(float64(t.Burglary) * ratio),
		Larceny:      int(float64(t.Larceny) * ratio),
		VehicleTheft: int(float64(t.VehicleTheft) * ratio),
		Robbery:      int(float64(t.Robbery) * ratio),
	}
}

func oriForPoint(p geo.Point) string {
	for _, ab := range agencyBoxes {
		if geo.InBox(p, ab.box) {
			return ab.ori
		}
	}
	return ""
}

// Ensure Client implements the crime provider interface.
var _ crime.Provider = (*Client)(nil)
