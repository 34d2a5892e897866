package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/handlers"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/middleware"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

func RegisterAdminRoutes(router chi.Router, db *sql.DB, cfg *config.Config, stats services.MediaStatsClient) {
	campaignRepo := repository.NewCampaignRepository(db)
	clipRepo := repository.NewClipRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	clipService := services.NewClipService(clipRepo, campaignRepo)

	campaignHandler := handlers.NewCampaignHandler(campaignRepo, clipRepo, accountRepo)
	clipHandler := handlers.NewClipHandler(clipService, clipRepo, campaignRepo)
	syncHandler := handlers.NewSyncHandler(clipService, clipRepo, campaignRepo, stats)

	router.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Use(middleware.RequireRole(string(models.RoleAdmin)))

		r.Get("/campaigns", campaignHandler.ListAdminCampaigns)
		r.Put("/clip/{id}", clipHandler.DecideClip)
		r.Delete("/clip/{id}", clipHandler.AdminDeleteClip)

		r.Post("/sync/views", syncHandler.SyncViews)
		r.Post("/sync/maintenance", syncHandler.Maintenance)
	})
}
