package distancematrix

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movewise/movewise/internal/commute"
)

func TestEstimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("mode"); got != "driving" {
			t.Errorf("mode = %q, want driving", got)
		}
		if got := r.URL.Query().Get("destinations"); got != "350 5th Ave, New York" {
			t.Errorf("destinations = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"duration": {"value": 1920, "text": "32 mins"},
				"distance": {"value": 19312, "text": "12.0 mi"}
			}]}]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	info, err := client.Estimate(context.Background(), 40.7, -74.0, "350 5th Ave, New York", commute.ModeDriving)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if info.DurationMinutes == nil || *info.DurationMinutes != 32 {
		t.Errorf("duration = %v, want 32", info.DurationMinutes)
	}
	if info.Distance != "12.0 mi" {
		t.Errorf("distance = %q, want 12.0 mi", info.Distance)
	}
	if !info.IsRealData {
		t.Error("expected IsRealData=true")
	}
}

func TestEstimateNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "OK", "rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.Estimate(context.Background(), 40.7, -74.0, "nowhere", commute.ModeWalking)
	if err != commute.ErrNoRoute {
		t.Errorf("error = %v, want ErrNoRoute", err)
	}
}

func TestEstimateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.Estimate(context.Background(), 40.7, -74.0, "1 Main St", commute.ModeDriving)
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}
