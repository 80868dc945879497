// Package handler provides HTTP handlers for the MoveWise API.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/movewise/movewise/internal/api/models"
	"github.com/movewise/movewise/internal/api/response"
	"github.com/movewise/movewise/internal/provider/resilience"
)

// Pinger checks connectivity to a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
}

// NewOpsHandler creates a new OpsHandler. db may be nil when the service
// runs without persistence.
func NewOpsHandler(version, buildTime string, db Pinger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// is ready when the database answers a ping.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - circuit state of every
// registered upstream provider.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
	}

	for _, ph := range resilience.GlobalRegistry.GetAllHealth() {
		providerStatus := models.HealthStatusOK
		if !ph.IsHealthy() {
			providerStatus = models.HealthStatusFail
		}
		if ph.IsUnhealthy() {
			status.Status = models.HealthStatusFail
		}
		status.Providers = append(status.Providers, models.ProviderStatus{
			Provider:      ph.Name,
			Status:        providerStatus,
			LastSuccessAt: ph.LastSuccessAt,
			LastFailureAt: ph.LastFailureAt,
			LastError:     ph.LastError,
		})
	}

	sort.Slice(status.Providers, func(i, j int) bool {
		return status.Providers[i].Provider < status.Providers[j].Provider
	})

	response.JSON(w, r, http.StatusOK, status)
}
