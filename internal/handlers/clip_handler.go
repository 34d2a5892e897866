package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

type ClipHandler struct {
	svc       *services.ClipService
	clips     interfaces.ClipRepository
	campaigns interfaces.CampaignRepository
	validator *validator.Validate
}

func NewClipHandler(svc *services.ClipService, clips interfaces.ClipRepository, campaigns interfaces.CampaignRepository) *ClipHandler {
	return &ClipHandler{
		svc:       svc,
		clips:     clips,
		campaigns: campaigns,
		validator: validator.New(),
	}
}

// CreatorClip is a clip as shown to its creator, with the moderation state
// spelled out for display.
type CreatorClip struct {
	models.Clip
	DisplayStatus string `json:"display_status"`
}

func displayStatus(s models.ClipStatus) string {
	if s == models.ClipStatusPending {
		return "in_review"
	}
	return string(s)
}

// SubmitClip handles POST /api/creator/submit-clip
// @Tags Creator
// @Summary Submit a clip to a campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.SubmitClipRequest true "Submission"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/creator/submit-clip [post]
func (h *ClipHandler) SubmitClip(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	clip, err := h.svc.Submit(r.Context(), requestUserID(r), &req)
	if err != nil {
		switch err {
		case services.ErrCampaignNotFound, services.ErrCampaignInactive:
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found or not active")
		case services.ErrSubmissionQuota:
			writeJSONError(w, http.StatusBadRequest, "submission_limit", "You have reached the submission limit for this campaign")
		default:
			log.Printf("Failed to submit clip: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "submit_clip_failed", "Failed to submit clip")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"clip_id": clip.ID,
		"message": "Clip submitted successfully",
	})
}

// YourCampaigns handles GET /api/creator/your-campaigns
// @Tags Creator
// @Summary Active campaigns the creator has clips in
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.CreatorCampaign
// @Router /api/creator/your-campaigns [get]
func (h *ClipHandler) YourCampaigns(w http.ResponseWriter, r *http.Request) {
	creatorID := requestUserID(r)

	ids, err := h.clips.ListCampaignIDsByCreator(r.Context(), creatorID)
	if err != nil {
		log.Printf("Failed to list creator campaign ids: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	out := []models.CreatorCampaign{}
	if len(ids) == 0 {
		writeJSON(w, http.StatusOK, out)
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), interfaces.CampaignFilter{IDs: ids, ActiveOnly: true})
	if err != nil {
		log.Printf("Failed to list creator campaigns: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	for _, c := range campaigns {
		clips, err := h.clips.ListByCreatorAndCampaign(r.Context(), creatorID, c.ID)
		if err != nil {
			log.Printf("Failed to list clips for campaign %s: %v", c.ID, err)
			writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list clips")
			return
		}

		cc := models.CreatorCampaign{
			Campaign:       *c,
			SubmittedClips: []models.Clip{},
			AcceptedClips:  []models.Clip{},
		}
		for _, clip := range clips {
			switch clip.Status {
			case models.ClipStatusAccepted:
				cc.AcceptedClips = append(cc.AcceptedClips, clip)
			default:
				cc.SubmittedClips = append(cc.SubmittedClips, clip)
			}
		}
		out = append(out, cc)
	}

	writeJSON(w, http.StatusOK, out)
}

// CampaignClips handles GET /api/creator/campaign-clips?campaign_id=
func (h *ClipHandler) CampaignClips(w http.ResponseWriter, r *http.Request) {
	campaignID := r.URL.Query().Get("campaign_id")
	if campaignID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "campaign_id is required")
		return
	}

	clips, err := h.clips.ListByCreatorAndCampaign(r.Context(), requestUserID(r), campaignID)
	if err != nil {
		log.Printf("Failed to list creator clips: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_clips_failed", "Failed to list clips")
		return
	}

	out := make([]CreatorClip, 0, len(clips))
	for _, clip := range clips {
		out = append(out, CreatorClip{Clip: clip, DisplayStatus: displayStatus(clip.Status)})
	}

	writeJSON(w, http.StatusOK, out)
}

// AcceptedClipDetails handles GET /api/creator/accepted-clip-details/{id}
func (h *ClipHandler) AcceptedClipDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	clip, err := h.clips.GetAcceptedForCreator(r.Context(), id, requestUserID(r))
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "clip_not_found", "Accepted clip not found")
			return
		}
		log.Printf("Failed to fetch accepted clip %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "get_clip_failed", "Failed to fetch clip")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

// DeleteOwnClip handles DELETE /api/creator/clip/{id}. Deletion is idempotent:
// a missing clip still returns 200, the message says nothing was removed.
func (h *ClipHandler) DeleteOwnClip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.svc.DeleteForCreator(r.Context(), id, requestUserID(r))
	if err != nil {
		log.Printf("Failed to delete clip %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "delete_clip_failed", "Failed to delete clip")
		return
	}

	if removed == nil {
		writeJSONMessage(w, http.StatusOK, "Clip already removed")
		return
	}
	writeJSONMessage(w, http.StatusOK, "Clip deleted successfully")
}

// DecideClip handles PUT /api/admin/clip/{id}
// @Tags Admin
// @Summary Accept or reject a pending clip
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Clip ID"
// @Param body body models.ClipDecisionRequest true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin/clip/{id} [put]
func (h *ClipHandler) DecideClip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ClipDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.svc.Decide(r.Context(), id, &req); err != nil {
		switch err {
		case services.ErrClipNotFound:
			writeJSONError(w, http.StatusNotFound, "clip_not_found", "No pending clip with this id")
		case services.ErrInvalidDecision:
			writeJSONError(w, http.StatusBadRequest, "invalid_decision", "Status must be accepted or rejected")
		default:
			log.Printf("Failed to decide clip %s: %v", id, err)
			writeJSONError(w, http.StatusInternalServerError, "decide_clip_failed", "Failed to update clip")
		}
		return
	}

	writeJSONMessage(w, http.StatusOK, "Clip "+req.Status)
}

// AdminDeleteClip handles DELETE /api/admin/clip/{id} with the same
// idempotent contract as the creator route, without the ownership scope.
func (h *ClipHandler) AdminDeleteClip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		log.Printf("Failed to delete clip %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "delete_clip_failed", "Failed to delete clip")
		return
	}

	if removed == nil {
		writeJSONMessage(w, http.StatusOK, "Clip already removed")
		return
	}
	writeJSONMessage(w, http.StatusOK, "Clip deleted successfully")
}
