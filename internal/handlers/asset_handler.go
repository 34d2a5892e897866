package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
)

// AssetHandler uploads campaign brand assets (logos, briefs, reference media)
// to S3 and stores the public URL on the campaign.
type AssetHandler struct {
	campaigns     interfaces.CampaignRepository
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

func NewAssetHandler(campaigns interfaces.CampaignRepository, s3Config *config.S3Config) *AssetHandler {
	return &AssetHandler{
		campaigns:     campaigns,
		s3Client:      s3Config.Client,
		bucket:        s3Config.Bucket,
		publicBaseURL: s3Config.PublicBaseURL,
	}
}

// UploadAsset handles POST /api/brand/campaigns/{id}/asset
// @Tags Brand
// @Summary Upload campaign asset
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Campaign ID"
// @Param file formData file true "Asset file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/brand/campaigns/{id}/asset [post]
func (h *AssetHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	const maxMemory = 32 << 20 // 32MB max memory
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	var fileHeaders = r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		fileHeaders = r.MultipartForm.File["files"]
	}
	if len(fileHeaders) == 0 {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "No file uploaded")
		return
	}
	fileHeader := fileHeaders[0]

	file, err := fileHeader.Open()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to open uploaded file")
		return
	}
	defer file.Close()

	key := filepath.Join("assets", campaignID+filepath.Ext(fileHeader.Filename))
	uploader := manager.NewUploader(h.s3Client)
	_, err = uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		log.Printf("Failed to upload asset %s to S3: %v", fileHeader.Filename, err)
		writeJSONError(w, http.StatusBadGateway, "upload_failed", "Failed to upload file")
		return
	}

	assetLink := strings.TrimRight(h.publicBaseURL, "/") + "/" + key
	patch := interfaces.CampaignPatch{AssetLink: &assetLink}
	if err := h.campaigns.UpdateFields(r.Context(), campaignID, requestUserID(r), patch); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		log.Printf("Failed to store asset link for campaign %s: %v", campaignID, err)
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to store asset link")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"asset_link": assetLink,
		"message":    "Asset uploaded successfully",
	})
}
