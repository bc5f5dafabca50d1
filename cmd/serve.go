package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/services"
)

const shutdownTimeout = 15 * time.Second

func (a *application) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			return a.serve(c.Context)
		},
	}
}

func (a *application) serve(ctx context.Context) error {
	logger := a.newLogger(os.Stdout)
	slog.SetDefault(logger)

	if err := a.cfg.RequireJWT(); err != nil {
		return err
	}
	logger.Info("configuration loaded",
		slog.Int("port", a.cfg.ServerPort),
		slog.String("storage_driver", a.cfg.StorageDriver),
	)

	store, err := openBackend(a.cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	uploader, err := openUploader(ctx, a.cfg, logger)
	if err != nil {
		return err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(hubCtx)
	logger.Info("WebSocket Hub started")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	tournamentService := services.NewTournamentService(store.gateway, logger)
	playerService := services.NewPlayerService(store.gateway, logger)
	matchService := services.NewMatchService(store.gateway, wsHub, metrics, logger)
	pairingService := services.NewPairingService(store.gateway, wsHub, metrics, logger)
	exportService := services.NewExportService(store.gateway, uploader, logger)
	adminService := services.NewAdminService(store.gateway, logger)
	logger.Info("Services initialized")

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		routes.Options{
			JWTSecret:      []byte(a.cfg.JWTSecretKey),
			AllowedOrigins: a.cfg.CORSAllowedOrigins,
			Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		},
		handlers.NewHealthHandler(store.ping),
		handlers.NewTournamentHandler(tournamentService, exportService),
		handlers.NewPlayerHandler(playerService),
		handlers.NewMatchHandler(matchService),
		handlers.NewRoundHandler(pairingService),
		handlers.NewAdminHandler(adminService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, a.cfg.CORSAllowedOrigins),
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
	return nil
}
