package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readingnest/internal/config"
	"readingnest/internal/database"
	"readingnest/internal/handlers"
	"readingnest/internal/repository"
	"readingnest/internal/security"
	"readingnest/internal/service"
)

func main() {
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithType(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	ctx := context.Background()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	wordRepo := repository.NewWordRepository(db)
	bookRepo := repository.NewBookRepository(db)
	momentRepo := repository.NewMomentRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	childService := service.NewChildService(childRepo)
	activityService := service.NewActivityService(wordRepo, bookRepo, momentRepo, childService)

	mediaService, err := service.NewMediaService(ctx, cfg.AWSRegion, cfg.MediaBucket, cfg.MediaURLExpiry, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	statsService := service.NewStatsService(wordRepo, bookRepo, momentRepo, mediaService, cfg.WeekStart)

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, handlers.OAuthConfig{
		GoogleClientID: cfg.GoogleClientID,
		AppleClientID:  cfg.AppleClientID,
	})
	childHandler := handlers.NewChildHandler(childService, mediaService)
	activityHandler := handlers.NewActivityHandler(activityService)
	momentHandler := handlers.NewMomentHandler(activityService, childService, statsService, mediaService)
	statsHandler := handlers.NewStatsHandler(statsService, childService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/oauth/google", middleware.RateLimit(authHandler.GoogleSignIn))
	mux.HandleFunc("POST /api/auth/oauth/apple", middleware.RateLimit(authHandler.AppleSignIn))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Account routes
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))

	// Child profile routes
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.List))
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.Create))
	mux.HandleFunc("GET /api/children/{id}", middleware.RequireAuth(childHandler.Get))
	mux.HandleFunc("PUT /api/children/{id}", middleware.RequireAuth(childHandler.Update))
	mux.HandleFunc("PUT /api/children/{id}/avatar", middleware.RequireAuth(childHandler.UpdateAvatar))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childHandler.Delete))

	// Word routes
	mux.HandleFunc("POST /api/children/{id}/words", middleware.RequireAuth(activityHandler.LogWord))
	mux.HandleFunc("GET /api/children/{id}/words", middleware.RequireAuth(activityHandler.ListWords))
	mux.HandleFunc("DELETE /api/children/{id}/words/{wordId}", middleware.RequireAuth(activityHandler.DeleteWord))

	// Book routes
	mux.HandleFunc("POST /api/children/{id}/books", middleware.RequireAuth(activityHandler.LogBook))
	mux.HandleFunc("GET /api/children/{id}/books", middleware.RequireAuth(activityHandler.ListBooks))
	mux.HandleFunc("DELETE /api/children/{id}/books/{bookId}", middleware.RequireAuth(activityHandler.DeleteBook))

	// Moment routes
	mux.HandleFunc("POST /api/children/{id}/moments", middleware.RequireAuth(momentHandler.Create))
	mux.HandleFunc("GET /api/children/{id}/moments/recent", middleware.RequireAuth(momentHandler.Recent))
	mux.HandleFunc("PUT /api/children/{id}/moments/{momentId}/trim", middleware.RequireAuth(momentHandler.UpdateTrim))
	mux.HandleFunc("DELETE /api/children/{id}/moments/{momentId}", middleware.RequireAuth(momentHandler.Delete))

	// Uploads
	mux.HandleFunc("POST /api/uploads/presign", middleware.RequireAuth(momentHandler.PresignUpload))

	// Stats
	mux.HandleFunc("GET /api/children/{id}/stats", middleware.RequireAuth(statsHandler.Get))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Failed to cleanup expired sessions: %v", err)
		}
	}
}
