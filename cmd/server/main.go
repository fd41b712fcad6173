// Command server runs the RebLaw AI proxy: the HTTP backend that answers
// Iranian-law questions with provider completions grounded in the local
// statutory article store.
//
// Startup order: env → config → logging → tracing → law store (bootstrap,
// open, migrate) → gateway → router → HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/reblaw/go-law-proxy/internal/config"
	"github.com/reblaw/go-law-proxy/internal/gateway"
	httpapi "github.com/reblaw/go-law-proxy/internal/http"
	"github.com/reblaw/go-law-proxy/internal/observability"
	"github.com/reblaw/go-law-proxy/internal/repo"
	"github.com/reblaw/go-law-proxy/internal/sysutil"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments use the process environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.InitLogging(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// The store is mandatory: a missing file that cannot be provisioned is a
	// fatal configuration error, not a degraded mode.
	if err := repo.EnsureLawDB(ctx, cfg.DBPath, cfg.LawDBURL, cfg.LawDBMinBytes); err != nil {
		log.Fatal().Err(err).Msg("law db unavailable")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open law db")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate law db")
	}
	if n, err := repo.CountArticles(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("law db not readable")
	} else {
		log.Info().Int64("articles", n).Str("path", cfg.DBPath).Msg("law store ready")
	}

	gw := gateway.NewOpenAI(gateway.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: float32(cfg.OpenAI.Temperature),
		Timeout:     cfg.OpenAI.Timeout,
	})

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, gw, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
