package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/trip-planner-app/internal/server"
	"go.uber.org/zap"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the travel planner web server",
		Long:  `Start the HTTP server that serves the planning form, the JSON API, exports, health checks and metrics.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	log.Info("Starting travel planner server",
		zap.String("config_path", configPath),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	a, err := buildApp(cmd.Context(), cfg, log.Logger, tele)
	if err != nil {
		log.Error("Failed to build planner", zap.Error(err))
		return err
	}
	defer a.Close()

	srv := server.New(cfg, server.Deps{
		Planner:         a.planner,
		Metrics:         a.metrics,
		HTTPMetrics:     a.httpMetrics,
		ReadinessChecks: a.readiness,
	}, log.Logger, tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
