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

func RegisterCreatorRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	campaignRepo := repository.NewCampaignRepository(db)
	clipRepo := repository.NewClipRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	clipService := services.NewClipService(clipRepo, campaignRepo)

	clipHandler := handlers.NewClipHandler(clipService, clipRepo, campaignRepo)
	creatorHandler := handlers.NewCreatorHandler(accountRepo)

	router.Route("/api/creator", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Use(middleware.RequireRole(string(models.RoleCreator)))

		r.Post("/submit-clip", clipHandler.SubmitClip)
		r.Get("/your-campaigns", clipHandler.YourCampaigns)
		r.Get("/campaign-clips", clipHandler.CampaignClips)
		r.Get("/accepted-clip-details/{id}", clipHandler.AcceptedClipDetails)
		r.Delete("/clip/{id}", clipHandler.DeleteOwnClip)

		r.Get("/profile", creatorHandler.GetProfile)
		r.Put("/profile", creatorHandler.UpdateProfile)
	})
}
