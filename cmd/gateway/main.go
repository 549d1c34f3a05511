package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/config"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/notify"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/partner"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest/handlers"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	purchaseRepo := postgres.NewPurchaseRepository(db)

	partnerClient := partner.NewClient(cfg.Partner)
	notifyClient := notify.NewClient(cfg.Notifier)

	initiateService := services.NewInitiateService(purchaseRepo, partnerClient, logger)
	returnService := services.NewReturnService(purchaseRepo, notifyClient, logger)
	checkService := services.NewCheckService(purchaseRepo)

	h := handlers.NewHandlers(
		initiateService,
		returnService,
		checkService,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
