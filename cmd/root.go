package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.uber.org/zap"
)

var (
	configPath string
	cfg        *config.Config
	log        *logger.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripplanner",
		Short: "AI travel planner",
		Long:  `Generates day-by-day travel itineraries with a hosted language model, enriched with current weather, map coordinates and a budget breakdown.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := tele.Shutdown(context.Background()); err != nil && log != nil {
				log.Warn("Failed to shut down telemetry", zap.Error(err))
			}
			if log != nil {
				_ = log.Sync()
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd())
	cmd.AddCommand(planCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices(ctx context.Context) error {
	var err error

	// 1. Load config
	cfg, err = config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, "The language model API key is not configured. Set TRIP_LLM_API_KEY in the environment or in a .env file.")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// 3. Telemetry is optional; keep going without it
	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
	}

	return nil
}
