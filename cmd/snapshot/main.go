//cmd/snapshot/main.go
package main

import (
    "encoding/json"
    "log"
    "os"

    "github.com/joho/godotenv"

    "github.com/unclebandit/donorpulse-backend/internal/config"
    "github.com/unclebandit/donorpulse-backend/internal/generator"
    "github.com/unclebandit/donorpulse-backend/internal/service"
)

// Generates one full dataset with the configured sizes and prints it as
// JSON. Handy for seeding a frontend mock or eyeballing the tables.
func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found, relying on OS environment variables")
    }

    cfg, err := config.Load()
    if err != nil {
        log.Fatal(err)
    }

    campaigns, err := generator.DefaultCampaignDistribution()
    if err != nil {
        log.Fatal(err)
    }

    svc := &service.DashboardService{
        DonorCount:    cfg.DonorCount,
        DonationCount: cfg.DonationCount,
        ChurnTopN:     cfg.ChurnTopN,
        NudgeCount:    cfg.NudgeCount,
        Seed:          cfg.Seed,
        Campaigns:     campaigns,
    }

    snapshot, err := svc.RenderCycle(service.CycleOptions{})
    if err != nil {
        log.Fatalf("failed to generate snapshot: %v", err)
    }

    enc := json.NewEncoder(os.Stdout)
    enc.SetIndent("", "  ")
    if err := enc.Encode(snapshot); err != nil {
        log.Fatal(err)
    }
}
