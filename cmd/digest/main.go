package main

import (
	"context"
	"flag"
	"log"
	"time"

	"readingnest/internal/config"
	"readingnest/internal/database"
	"readingnest/internal/repository"
	"readingnest/internal/service"
)

// Sends every parent a weekly reading summary per child. Intended to run
// from cron at the end of each week.
func main() {
	dryRun := flag.Bool("dry-run", false, "Compute digests without sending email")
	flag.Parse()

	cfg := config.Load()

	db, err := database.InitializeWithType(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	wordRepo := repository.NewWordRepository(db)
	bookRepo := repository.NewBookRepository(db)
	momentRepo := repository.NewMomentRepository(db)

	mediaService, err := service.NewMediaService(ctx, cfg.AWSRegion, cfg.MediaBucket, cfg.MediaURLExpiry, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	statsService := service.NewStatsService(wordRepo, bookRepo, momentRepo, mediaService, cfg.WeekStart)

	users, err := userRepo.GetAllUsers()
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	sent := 0
	for _, user := range users {
		children, err := childRepo.GetUserChildren(user.ID)
		if err != nil {
			log.Printf("Skipping %s: failed to list children: %v", user.Email, err)
			continue
		}

		for _, child := range children {
			snapshot, err := statsService.ComputeStats(ctx, child.ID, statsService.WeekStart(time.Now()))
			if err != nil {
				log.Printf("Skipping %s/%s: %v", user.Email, child.Name, err)
				continue
			}
			if snapshot.IsZero() {
				continue
			}

			if *dryRun {
				log.Printf("Would send digest to %s for %s: %+v", user.Email, child.Name, *snapshot)
				continue
			}

			if err := emailService.SendWeeklyDigest(ctx, user.Email, user.Name, child.Name, snapshot); err != nil {
				log.Printf("Failed to send digest to %s: %v", user.Email, err)
				continue
			}
			sent++
		}
	}

	log.Printf("Digest run complete: %d emails sent across %d accounts", sent, len(users))
}
