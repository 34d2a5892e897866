// internal/routes/campaign_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/handlers"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/middleware"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
)

func RegisterCampaignRoutes(router chi.Router, db *sql.DB, cfg *config.Config, s3Config *config.S3Config) {
	campaignRepo := repository.NewCampaignRepository(db)
	clipRepo := repository.NewClipRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	campaignHandler := handlers.NewCampaignHandler(campaignRepo, clipRepo, accountRepo)
	assetHandler := handlers.NewAssetHandler(campaignRepo, s3Config)

	// Public browse surface
	router.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListCampaigns)
		r.Get("/{id}", campaignHandler.GetCampaign)
	})

	router.Route("/api/brand", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Use(middleware.RequireRole(string(models.RoleBrand)))

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaignHandler.CreateCampaign)
			r.Get("/", campaignHandler.ListBrandCampaigns)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", campaignHandler.DeleteCampaign)
				r.Put("/budget", campaignHandler.UpdateBudget)
				r.Put("/requirements", campaignHandler.UpdateRequirements)
				r.Put("/status", campaignHandler.UpdateStatus)
				r.Put("/view_threshold", campaignHandler.UpdateViewThreshold)
				r.Put("/deadline", campaignHandler.UpdateDeadline)
				r.Post("/asset", assetHandler.UploadAsset)
			})
		})
	})
}
