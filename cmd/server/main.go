// cmd/server/main.go
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/unclebandit/donorpulse-backend/internal/config"
	"github.com/unclebandit/donorpulse-backend/internal/controller"
	"github.com/unclebandit/donorpulse-backend/internal/generator"
	"github.com/unclebandit/donorpulse-backend/internal/logger"
	"github.com/unclebandit/donorpulse-backend/internal/queue"
	"github.com/unclebandit/donorpulse-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("Invalid configuration: ", err)
	}
	logger.Init(cfg)

	campaigns, err := generator.DefaultCampaignDistribution()
	if err != nil {
		logger.Log.Fatal("Invalid campaign weights: ", err)
	}

	var q queue.Queue
	switch cfg.QueueDriver {
	case "amqp":
		pub, err := queue.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			logger.Log.Fatal("Failed to set up AMQP publisher: ", err)
		}
		defer pub.Close()
		q = pub
	default:
		mem := queue.NewInMemoryQueue()
		queue.StartOutreachSubscriber(mem)
		q = mem
	}

	dashboardService := &service.DashboardService{
		DonorCount:    cfg.DonorCount,
		DonationCount: cfg.DonationCount,
		ChurnTopN:     cfg.ChurnTopN,
		NudgeCount:    cfg.NudgeCount,
		Seed:          cfg.Seed,
		Campaigns:     campaigns,
		Queue:         q,
	}

	dashboardController := &controller.DashboardController{
		DashboardService: dashboardService,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", dashboardController.Healthz)

	// Dashboard routes
	r.Get("/api/dashboard", dashboardController.GetDashboard)
	r.Get("/api/donors", dashboardController.ListDonors)
	r.Get("/api/donations", dashboardController.ListDonations)
	r.Get("/api/segments", dashboardController.GetSegments)
	r.Get("/api/churn-risks", dashboardController.GetChurnRisks)
	r.Get("/api/nudges", dashboardController.GetNudges)
	r.Get("/api/campaigns/performance", dashboardController.GetCampaignPerformance)

	// Outreach campaign launches
	r.Post("/api/campaigns/retention", dashboardController.LaunchRetentionCampaign)
	r.Post("/api/campaigns/nudge", dashboardController.LaunchNudgeCampaign)

	logger.Log.Info("🚀 Server running on :", cfg.Port)
	logger.Log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
