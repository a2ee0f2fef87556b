package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleanvent/leadrelay/cmd/mainconfig"
	"github.com/cleanvent/leadrelay/internal/api/router"
	appconfig "github.com/cleanvent/leadrelay/internal/config"
	"github.com/cleanvent/leadrelay/internal/http/handlers"
	"github.com/cleanvent/leadrelay/internal/notify"
	"github.com/cleanvent/leadrelay/internal/observability/metrics"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

func main() {
	// Optional .env for local development; real deployments use the
	// platform environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.EmailProvider,
	)

	recipients, err := notify.ParseRecipients(cfg.LeadRecipients)
	if err != nil {
		logger.Error("invalid LEAD_RECIPIENTS", "error", err)
		os.Exit(1)
	}

	sender, err := mainconfig.BuildEmailSender(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		os.Exit(1)
	}

	leadMetrics := metrics.NewLeadMetrics(prometheus.DefaultRegisterer)

	notifier := notify.NewNotifier(sender, notify.NotifierConfig{
		Recipients:  recipients,
		SiteName:    cfg.SiteName,
		ResponseSLA: cfg.ResponseSLA,
		SendTimeout: cfg.SendTimeout,
	}, logger)

	contactHandler := handlers.NewContactHandler(notifier, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		ContactHandler:      contactHandler,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		GeoAllowedCountries: cfg.GeoAllowedCountries,
		GeoBlockedPath:      cfg.GeoBlockedPath,
		StagingHost:         cfg.StagingHost,
		StagingUser:         cfg.StagingUser,
		StagingPassword:     cfg.StagingPassword,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "recipients", len(recipients))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
