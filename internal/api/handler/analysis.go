package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/movewise/movewise/internal/analysis"
	"github.com/movewise/movewise/internal/api/middleware"
	"github.com/movewise/movewise/internal/api/models"
	"github.com/movewise/movewise/internal/api/response"
)

// AnalysisHandler handles relocation analysis endpoints.
type AnalysisHandler struct {
	analyses *analysis.Service
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyses *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{analyses: analyses}
}

// CreateAnalysis handles POST /v1/analyses - run a full relocation
// comparison between two addresses.
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var req analysis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	req.CurrentAddress = strings.TrimSpace(req.CurrentAddress)
	req.DestinationAddress = strings.TrimSpace(req.DestinationAddress)

	var fieldErrors []models.FieldError
	if req.CurrentAddress == "" {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "current_address",
			Message: "must not be empty",
		})
	}
	if req.DestinationAddress == "" {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "destination_address",
			Message: "must not be empty",
		})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	result, err := h.analyses.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, analysis.ErrGeocoding) {
			response.BadRequest(w, r, "could not geocode address", nil)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.Created(w, r, "/v1/analyses/"+result.ID, result)
}

// ListAnalyses handles GET /v1/analyses - list the user's past analyses,
// newest first. An optional limit query parameter caps the page size.
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, r, "limit must be an integer between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	summaries, err := h.analyses.List(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, models.AnalysisList{
		Analyses: summaries,
		Count:    len(summaries),
	})
}

// GetAnalysis handles GET /v1/analyses/{analysisId} - fetch a stored
// analysis with its full component breakdown.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	result, err := h.analyses.Get(r.Context(), userID, chi.URLParam(r, "analysisId"))
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			response.NotFound(w, r, "analysis not found")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// DeleteAnalysis handles DELETE /v1/analyses/{analysisId}.
func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	err := h.analyses.Delete(r.Context(), userID, chi.URLParam(r, "analysisId"))
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			response.NotFound(w, r, "analysis not found")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.NoContent(w, r)
}
