package overpass

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/movewise/movewise/internal/noise"
)

func TestNearbyRoads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "highway") {
			t.Errorf("request body missing highway query: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements": [
			{"type": "node", "id": 1, "lat": 40.7010, "lon": -74.0000},
			{"type": "node", "id": 2, "lat": 40.7020, "lon": -74.0000},
			{"type": "way", "id": 10, "tags": {"highway": "residential", "name": "Elm St"}, "nodes": [1, 2]},
			{"type": "way", "id": 11, "tags": {"highway": "motorway"}, "nodes": [2]},
			{"type": "way", "id": 12, "tags": {"building": "yes"}, "nodes": [1]}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	roads, err := client.NearbyRoads(context.Background(), 40.7000, -74.0000, 3218)
	if err != nil {
		t.Fatalf("NearbyRoads() error = %v", err)
	}
	if len(roads) != 2 {
		t.Fatalf("got %d roads, want 2", len(roads))
	}

	if roads[0].Class != "residential" || roads[0].Name != "Elm St" {
		t.Errorf("road[0] = %+v", roads[0])
	}
	// Closest node is ~0.069 miles north of the center.
	if roads[0].DistanceMiles < 0.05 || roads[0].DistanceMiles > 0.09 {
		t.Errorf("road[0] distance = %v, want ~0.069", roads[0].DistanceMiles)
	}

	// Untagged ways get a placeholder name.
	if roads[1].Name != "Unnamed Road" {
		t.Errorf("road[1] name = %q, want Unnamed Road", roads[1].Name)
	}
	if roads[1].DistanceMiles <= roads[0].DistanceMiles {
		t.Errorf("road[1] should be farther than road[0]: %v vs %v", roads[1].DistanceMiles, roads[0].DistanceMiles)
	}
}

func TestNearbyRoadsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.NearbyRoads(context.Background(), 40.7, -74.0, 3218)
	if !errors.Is(err, noise.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestNearbyRoadsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.NearbyRoads(context.Background(), 40.7, -74.0, 3218)
	if !errors.Is(err, noise.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}
