package api

import (
	"net/http"

	"github.com/alex/dev-tools-portal/internal/api/handlers"
	"github.com/alex/dev-tools-portal/internal/api/middleware"
	"github.com/alex/dev-tools-portal/internal/config"
	"github.com/alex/dev-tools-portal/internal/service"
	"github.com/alex/dev-tools-portal/internal/token"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func NewRouter(services *service.Services, codec *token.Codec, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Health check stays outside the logger so probes keep the log quiet
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	linkHandler := handlers.NewLinkHandler(services.Link)
	fileHandler := handlers.NewFileHandler(services.File)

	r.Group(func(r chi.Router) {
		// Global middleware
		r.Use(chiMiddleware.RequestID)
		r.Use(chiMiddleware.Logger)
		r.Use(chiMiddleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				// Sign-in is throttled distinctly tighter than the rest of
				// the API to bound password guessing.
				r.With(httprate.LimitByIP(cfg.SignInRateLimit, cfg.SignInRateWindow)).
					Post("/sign-in", authHandler.SignIn)
				r.Post("/refresh-token", authHandler.RefreshToken)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Auth(codec, services.Auth))
					r.Post("/logout", authHandler.Logout)
					r.Post("/logout-others", authHandler.LogoutOthers)
				})
			})

			r.Route("/links", func(r chi.Router) {
				// Public reads
				r.Get("/", linkHandler.List)
				r.Get("/categories", linkHandler.Categories)
				r.Get("/{id}", linkHandler.Get)

				// Protected mutations
				r.Group(func(r chi.Router) {
					r.Use(middleware.Auth(codec, services.Auth))
					r.Post("/", linkHandler.Create)
					r.Put("/{id}", linkHandler.Update)
					r.Delete("/{id}", linkHandler.Delete)
				})
			})

			r.Route("/files", func(r chi.Router) {
				r.Use(middleware.Auth(codec, services.Auth))
				r.Get("/", fileHandler.List)
				r.Post("/upload-files", fileHandler.UploadFiles)
				r.Post("/upload-documents", fileHandler.UploadDocuments)
			})
		})
	})

	return r
}
