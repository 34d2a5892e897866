package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/middleware"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

type CampaignHandler struct {
	campaigns interfaces.CampaignRepository
	clips     interfaces.ClipRepository
	accounts  repository.AccountRepository
	validator *validator.Validate
}

func NewCampaignHandler(campaigns interfaces.CampaignRepository, clips interfaces.ClipRepository, accounts repository.AccountRepository) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
		clips:     clips,
		accounts:  accounts,
		validator: validator.New(),
	}
}

func requestUserID(r *http.Request) string {
	id, _ := r.Context().Value(middleware.CtxUserID).(string)
	return id
}

// ListCampaigns handles GET /api/campaigns
// @Tags Campaigns
// @Summary List active campaigns
// @Produce json
// @Success 200 {array} models.Campaign
// @Router /api/campaigns [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context(), interfaces.CampaignFilter{ActiveOnly: true})
	if err != nil {
		log.Printf("Failed to list campaigns: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaign handles GET /api/campaigns/{id}
// @Tags Campaigns
// @Summary Campaign detail with ranked clips and leaderboard
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignDetail
// @Failure 404 {object} map[string]interface{}
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaign, err := h.campaigns.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		log.Printf("Failed to fetch campaign %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign")
		return
	}

	accepted, err := h.clips.ListAcceptedWithCreator(r.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch accepted clips for campaign %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign clips")
		return
	}

	ranked := services.RankClips(accepted)
	if ranked == nil {
		ranked = []models.RankedClip{}
	}
	rankings := services.Leaderboard(ranked)

	writeJSON(w, http.StatusOK, models.CampaignDetail{
		Campaign:        *campaign,
		AcceptedClips:   ranked,
		CreatorRankings: rankings,
	})
}

// CreateCampaign handles POST /api/brand/campaigns
// @Tags Brand
// @Summary Create campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateCampaignRequest true "Campaign"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/brand/campaigns [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "deadline must be YYYY-MM-DD")
		return
	}

	campaign := &models.Campaign{
		ID:            uuid.NewString(),
		BrandID:       requestUserID(r),
		Name:          req.Name,
		Platform:      req.Platform,
		Budget:        req.Budget,
		CPV:           req.CPV,
		Hashtag:       req.Hashtag,
		Audio:         req.Audio,
		Deadline:      deadline,
		Category:      req.Category,
		Requirements:  req.Requirements,
		ViewThreshold: req.ViewThreshold,
		AssetLink:     req.AssetLink,
		IsActive:      true,
	}

	if err := h.campaigns.Create(r.Context(), campaign); err != nil {
		log.Printf("Failed to create campaign: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "create_campaign_failed", "Failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"campaign_id": campaign.ID,
		"message":     "Campaign created successfully",
	})
}

// ListBrandCampaigns handles GET /api/brand/campaigns
// @Tags Brand
// @Summary List own campaigns
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Campaign
// @Router /api/brand/campaigns [get]
func (h *CampaignHandler) ListBrandCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context(), interfaces.CampaignFilter{BrandID: requestUserID(r)})
	if err != nil {
		log.Printf("Failed to list brand campaigns: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// DeleteCampaign handles DELETE /api/brand/campaigns/{id}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.campaigns.Delete(r.Context(), id, requestUserID(r)); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		log.Printf("Failed to delete campaign %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "delete_campaign_failed", "Failed to delete campaign")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Campaign deleted successfully")
}

func (h *CampaignHandler) applyPatch(w http.ResponseWriter, r *http.Request, patch interfaces.CampaignPatch) {
	id := chi.URLParam(r, "id")

	if err := h.campaigns.UpdateFields(r.Context(), id, requestUserID(r), patch); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		log.Printf("Failed to update campaign %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "update_campaign_failed", "Failed to update campaign")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Campaign updated successfully")
}

// UpdateBudget handles PUT /api/brand/campaigns/{id}/budget
func (h *CampaignHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	h.applyPatch(w, r, interfaces.CampaignPatch{Budget: req.Budget})
}

// UpdateRequirements handles PUT /api/brand/campaigns/{id}/requirements
func (h *CampaignHandler) UpdateRequirements(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequirementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	h.applyPatch(w, r, interfaces.CampaignPatch{Requirements: req.Requirements})
}

// UpdateStatus handles PUT /api/brand/campaigns/{id}/status
func (h *CampaignHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCampaignStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	h.applyPatch(w, r, interfaces.CampaignPatch{IsActive: req.IsActive})
}

// UpdateViewThreshold handles PUT /api/brand/campaigns/{id}/view_threshold
func (h *CampaignHandler) UpdateViewThreshold(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateViewThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	h.applyPatch(w, r, interfaces.CampaignPatch{ViewThreshold: req.ViewThreshold})
}

// UpdateDeadline handles PUT /api/brand/campaigns/{id}/deadline
func (h *CampaignHandler) UpdateDeadline(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDeadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "deadline must be YYYY-MM-DD")
		return
	}

	h.applyPatch(w, r, interfaces.CampaignPatch{Deadline: &deadline})
}

// ListAdminCampaigns handles GET /api/admin/campaigns
// @Tags Admin
// @Summary All campaigns with brand and clips
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.AdminCampaign
// @Router /api/admin/campaigns [get]
func (h *CampaignHandler) ListAdminCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context(), interfaces.CampaignFilter{})
	if err != nil {
		log.Printf("Failed to list campaigns for admin: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	brandIDs := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		brandIDs = append(brandIDs, c.BrandID)
	}
	brandNames, err := h.accounts.ListBrandUsernames(r.Context(), brandIDs)
	if err != nil {
		log.Printf("Failed to resolve brand usernames: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	out := make([]models.AdminCampaign, 0, len(campaigns))
	for _, c := range campaigns {
		clips, err := h.clips.ListByCampaign(r.Context(), c.ID)
		if err != nil {
			log.Printf("Failed to list clips for campaign %s: %v", c.ID, err)
			writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaign clips")
			return
		}

		ac := models.AdminCampaign{
			Campaign:       *c,
			BrandUsername:  brandNames[c.BrandID],
			SubmittedClips: []models.Clip{},
			AcceptedClips:  []models.Clip{},
		}
		for _, clip := range clips {
			switch clip.Status {
			case models.ClipStatusPending:
				ac.SubmittedClips = append(ac.SubmittedClips, clip)
			case models.ClipStatusAccepted:
				ac.AcceptedClips = append(ac.AcceptedClips, clip)
			}
		}
		out = append(out, ac)
	}

	writeJSON(w, http.StatusOK, out)
}
