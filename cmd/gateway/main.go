package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/api"
	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/application/services"
	"github.com/ceras-workshop/storefront-gateway/internal/config"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/persistence/postgres"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/square"
	"github.com/ceras-workshop/storefront-gateway/internal/interfaces/rest/handlers"
	"github.com/ceras-workshop/storefront-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefront gateway",
		"port", cfg.Server.Port,
		"payments_mode", cfg.Payments.Mode,
		"square_env", cfg.Square.Environment,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	catalogService := services.NewCatalogService(productRepo)

	squareClient := square.NewClient(cfg.Square)
	retryClient := square.NewRetryClient(squareClient, cfg.Retry)

	locationService := services.NewLocationService(retryClient, logger)

	var gateway application.Gateway
	switch cfg.Payments.Mode {
	case "live":
		if cfg.Square.AccessToken == "" {
			logger.Error("live payments require square.access_token")
			os.Exit(1)
		}
		gateway = services.NewPaymentService(retryClient, logger)
	default:
		gateway = services.NewMockGateway(cfg.Payments.MockDelay)
	}

	h := handlers.NewHandlers(locationService, gateway, catalogService, logger)

	mux := http.NewServeMux()
	h.Register(mux)
	if err := api.RegisterDocsRoutes(mux); err != nil {
		logger.Error("failed to register docs routes", "error", err)
		os.Exit(1)
	}

	handler := middleware.Recovery(logger)(http.Handler(mux))
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
