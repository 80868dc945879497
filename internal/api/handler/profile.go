package handler

import (
	"encoding/json"
	"net/http"

	"github.com/movewise/movewise/internal/api/middleware"
	"github.com/movewise/movewise/internal/api/models"
	"github.com/movewise/movewise/internal/api/response"
	"github.com/movewise/movewise/internal/profile"
)

// ProfileHandler handles user preference profile endpoints.
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /v1/me/profile - get the user's preference
// profile. Users without a stored profile receive the defaults.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, toProfileResponse(p))
}

// UpsertProfile handles PUT /v1/me/profile - create or update the
// profile. Omitted fields keep their stored values.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	fieldErrors := validateProfileInput(&input)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	p, err := h.profiles.Upsert(r.Context(), userID, &profile.Input{
		WorkHours:       input.WorkHours,
		WorkAddress:     input.WorkAddress,
		CommuteMode:     input.CommuteMode,
		SleepHours:      input.SleepHours,
		NoisePreference: input.NoisePreference,
		Hobbies:         input.Hobbies,
		Bedrooms:        input.Bedrooms,
	})
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, toProfileResponse(p))
}

func toProfileResponse(p *profile.Profile) models.ProfileResponse {
	return models.ProfileResponse{
		WorkHours:       p.WorkHours,
		WorkAddress:     p.WorkAddress,
		CommuteMode:     p.CommuteMode,
		SleepHours:      p.SleepHours,
		NoisePreference: p.NoisePreference,
		Hobbies:         p.Hobbies,
		Bedrooms:        p.Bedrooms,
		UpdatedAt:       p.UpdatedAt,
	}
}

var validNoisePreferences = map[string]bool{
	"quiet":    true,
	"moderate": true,
	"lively":   true,
}

var validCommuteModes = map[string]bool{
	"driving":   true,
	"transit":   true,
	"bicycling": true,
	"walking":   true,
}

// validateProfileInput validates profile input and returns any field errors.
func validateProfileInput(input *models.ProfileInput) []models.FieldError {
	var fieldErrors []models.FieldError

	if input.NoisePreference != nil && !validNoisePreferences[*input.NoisePreference] {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "noise_preference",
			Message: "must be one of: quiet, moderate, lively",
		})
	}
	if input.CommuteMode != nil && !validCommuteModes[*input.CommuteMode] {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "commute_mode",
			Message: "must be one of: driving, transit, bicycling, walking",
		})
	}
	if input.Bedrooms != nil && (*input.Bedrooms < 0 || *input.Bedrooms > 4) {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "bedrooms",
			Message: "must be between 0 and 4",
		})
	}

	return fieldErrors
}
