// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/db"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/db/migrations"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/routes"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Create database if it doesn't exist
	if err := db.CreateDatabaseIfNotExists(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	// Initialize database
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s3Config, err := config.NewS3Config()
	if err != nil {
		log.Fatalf("Failed to configure S3: %v", err)
	}

	stats := services.NewInstagramClient(cfg.InstagramBaseURL, cfg.InstagramAccessToken)

	// Create router and setup routes
	router := routes.SetupRoutes(database.DB, cfg, s3Config, stats)

	// Create server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Hourly campaign expiry so past-deadline campaigns stop accepting clips
	// even when nobody calls the maintenance endpoint.
	expiryCtx, stopExpiry := context.WithCancel(context.Background())
	defer stopExpiry()
	go runCampaignExpiry(expiryCtx, repository.NewCampaignRepository(database.DB))

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give server 5 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func runCampaignExpiry(ctx context.Context, campaigns interfaces.CampaignRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := campaigns.DeactivateExpired(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("Campaign expiry pass failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Deactivated %d expired campaigns", n)
			}
		}
	}
}
