package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"geminichat/internal/handlers"
	"geminichat/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	staticDir string,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
	})

	// Widget assets, when present
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(staticDir)))
			log.Info().Str("dir", staticDir).Msg("Serving static widget assets")
		}
	}

	return r
}
