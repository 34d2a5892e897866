package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

// SyncHandler drives the two background jobs on demand: pulling view counts
// from the platform for published clips and repairing campaign state.
type SyncHandler struct {
	svc       *services.ClipService
	clips     interfaces.ClipRepository
	campaigns interfaces.CampaignRepository
	stats     services.MediaStatsClient
}

func NewSyncHandler(svc *services.ClipService, clips interfaces.ClipRepository, campaigns interfaces.CampaignRepository, stats services.MediaStatsClient) *SyncHandler {
	return &SyncHandler{
		svc:       svc,
		clips:     clips,
		campaigns: campaigns,
		stats:     stats,
	}
}

// SyncViews handles POST /api/admin/sync/views. Per-clip failures are logged
// and counted, never fatal: one dead media id must not stall the whole sync.
func (h *SyncHandler) SyncViews(w http.ResponseWriter, r *http.Request) {
	clips, err := h.clips.ListAcceptedWithMediaID(r.Context())
	if err != nil {
		log.Printf("Failed to list clips for view sync: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "sync_failed", "Failed to list clips")
		return
	}

	var synced, failed int
	for _, clip := range clips {
		stats, err := h.stats.GetMediaStats(r.Context(), *clip.MediaID)
		if err != nil {
			log.Printf("Failed to fetch stats for clip %s (media %s): %v", clip.ID, *clip.MediaID, err)
			failed++
			continue
		}

		update := models.ClipViewUpdate{
			MediaID:   clip.MediaID,
			ViewCount: stats.ViewCount,
			Caption:   stats.Caption,
			PostedAt:  stats.PostedAt,
		}
		if err := h.svc.RecordViews(r.Context(), clip.ID, update); err != nil {
			log.Printf("Failed to record views for clip %s: %v", clip.ID, err)
			failed++
			continue
		}
		synced++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"synced": synced,
		"failed": failed,
		"total":  len(clips),
	})
}

// Maintenance handles POST /api/admin/sync/maintenance: expires campaigns
// past their deadline and reconciles every total_view_count against the
// accepted clips actually present.
func (h *SyncHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	expired, err := h.campaigns.DeactivateExpired(r.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("Failed to deactivate expired campaigns: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "maintenance_failed", "Failed to deactivate expired campaigns")
		return
	}

	reconciled, err := h.campaigns.ReconcileTotals(r.Context())
	if err != nil {
		log.Printf("Failed to reconcile campaign totals: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "maintenance_failed", "Failed to reconcile totals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expired_campaigns":    expired,
		"reconciled_campaigns": reconciled,
	})
}
