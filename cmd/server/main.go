package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"geminichat/internal/config"
	"geminichat/internal/handlers"
	"geminichat/internal/logging"
	"geminichat/internal/router"
	"geminichat/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.IsDevelopment())
	log.Info().Str("env", cfg.Env).Msg("✓ Environment variables loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Initialize Gemini Client ────
	generator, err := services.NewGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("✗ Gemini client initialization failed")
	}
	if generator == nil {
		log.Warn().Msg("GEMINI_API_KEY is not set; /api/chat will answer 500 until it is configured")
	} else {
		log.Info().Str("client", cfg.GeminiClient).Str("model", cfg.GeminiModel).Msg("✓ Gemini client initialized")
	}
	chatService := services.NewChatService(generator)
	defer chatService.Close()

	// ──── Step 3: Start HTTP Server ────
	r := router.New(handlers.NewChatHandler(chatService), cfg.StaticDir, cfg.AllowedOrigin)

	// No WriteTimeout: a slow upstream sets the latency of /api/chat.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msgf("✓ Server running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server exited properly")
}
