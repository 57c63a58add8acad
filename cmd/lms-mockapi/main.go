package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/themirmakhmudov/lms-cli/internal/logger"
	"github.com/themirmakhmudov/lms-cli/internal/mockapi"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	_ = godotenv.Load()
	port := getEnv("MOCKAPI_PORT", "8050")
	failMode, _ := strconv.ParseBool(os.Getenv("MOCKAPI_FAIL_MODE"))

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "pretty"))
	log.Info().
		Str("port", port).
		Bool("fail_mode", failMode).
		Msg("Starting LMS mock API")

	// ─── Setup Server ──────────────────────────────────────────────────
	server := mockapi.NewServer(log, mockapi.Options{
		JWTSecret: os.Getenv("MOCKAPI_JWT_SECRET"),
		FailMode:  failMode,
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.Router(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
