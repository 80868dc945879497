package googleplaces

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movewise/movewise/internal/amenity"
)

func TestNearbyPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "pharmacy" {
			t.Errorf("type = %q, want pharmacy", q.Get("type"))
		}
		if q.Get("radius") != "8047" {
			t.Errorf("radius = %q, want 8047", q.Get("radius"))
		}
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", q.Get("key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "OK", "results": [
			{"name": "Corner Pharmacy", "geometry": {"location": {"lat": 40.71, "lng": -74.01}}},
			{"name": "Main St Pharmacy", "geometry": {"location": {"lat": 40.72, "lng": -74.02}}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	places, err := client.NearbyPlaces(context.Background(), 40.7, -74.0, "pharmacy", 8047)
	if err != nil {
		t.Fatalf("NearbyPlaces() error = %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].Name != "Corner Pharmacy" || places[0].Lat != 40.71 || places[0].Lon != -74.01 {
		t.Errorf("places[0] = %+v", places[0])
	}
}

func TestNearbyPlacesZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	places, err := client.NearbyPlaces(context.Background(), 40.7, -74.0, "gym", 8047)
	if err != nil {
		t.Fatalf("NearbyPlaces() error = %v", err)
	}
	if len(places) != 0 {
		t.Errorf("got %d places, want 0", len(places))
	}
}

func TestNearbyPlacesDeniedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.NearbyPlaces(context.Background(), 40.7, -74.0, "gym", 8047)
	if !errors.Is(err, amenity.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestNearbyPlacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.NearbyPlaces(context.Background(), 40.7, -74.0, "gym", 8047)
	if !errors.Is(err, amenity.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}
