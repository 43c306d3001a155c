package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex/dev-tools-portal/internal/api"
	"github.com/alex/dev-tools-portal/internal/config"
	"github.com/alex/dev-tools-portal/internal/repository/postgres"
	"github.com/alex/dev-tools-portal/internal/service"
	"github.com/alex/dev-tools-portal/internal/storage"
	"github.com/alex/dev-tools-portal/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize object storage
	store, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize services
	codec := token.NewCodec(cfg.JWTSecret)
	services := service.NewServices(repos, store, codec, cfg)

	// Bootstrap admin (no-op unless the user table is empty)
	if err := services.Auth.SeedAdmin(context.Background()); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	// Initialize router
	router := api.NewRouter(services, codec, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
