package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
)

type CreatorHandler struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
}

func NewCreatorHandler(accounts repository.AccountRepository) *CreatorHandler {
	return &CreatorHandler{
		accounts:  accounts,
		validator: validator.New(),
	}
}

// GetProfile handles GET /api/creator/profile
func (h *CreatorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	creator, err := h.accounts.GetCreatorByID(r.Context(), requestUserID(r))
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "creator_not_found", "Creator not found")
			return
		}
		log.Printf("Failed to fetch creator profile: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "get_profile_failed", "Failed to fetch profile")
		return
	}

	writeJSON(w, http.StatusOK, creator)
}

// UpdateProfile handles PUT /api/creator/profile. Saving any field marks the
// profile completed.
func (h *CreatorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCreatorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.accounts.UpdateCreatorProfile(r.Context(), requestUserID(r), &req); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "creator_not_found", "Creator not found")
			return
		}
		log.Printf("Failed to update creator profile: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "update_profile_failed", "Failed to update profile")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Profile updated successfully")
}
