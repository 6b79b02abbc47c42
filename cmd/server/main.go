package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flashcart/chargeback-intelligence/internal/config"
	"github.com/flashcart/chargeback-intelligence/internal/handler"
	"github.com/flashcart/chargeback-intelligence/internal/metrics"
	"github.com/flashcart/chargeback-intelligence/internal/middleware"
	"github.com/flashcart/chargeback-intelligence/internal/service"
	"github.com/flashcart/chargeback-intelligence/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st := store.New()
	snap, err := store.Load(ctx, cfg.ChargebackCSV, cfg.TransactionsCSV)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dataset")
	}
	st.Swap(snap)

	httpMetrics := metrics.New()
	httpMetrics.SetRecordsLoaded(st.RecordCount())

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(httpMetrics.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	setupRoutes(router, st, cfg)
	router.GET("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupRoutes(router *gin.Engine, st *store.Store, cfg *config.Config) {
	metricsService := service.NewMetricsService(st, service.Options{
		RateFallbackMultiplier: cfg.RateFallbackMultiplier,
		TrendSentinelPct:       cfg.TrendSentinelPct,
		TrendWindowDays:        cfg.TrendWindowDays,
		TopMerchantsLimit:      cfg.TopMerchantsLimit,
	})
	chargebackService := service.NewChargebackService(st)

	metricsHandler := handler.NewMetricsHandler(metricsService)
	chargebackHandler := handler.NewChargebackHandler(chargebackService)
	healthHandler := handler.NewHealthHandler(st)

	api := router.Group("/api")
	{
		api.GET("/chargebacks", chargebackHandler.List)
		api.GET("/metrics", metricsHandler.GetMetrics)
		api.GET("/health", healthHandler.Health)
	}
}
