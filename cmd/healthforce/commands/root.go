package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"healthforce/internal/analytics"
	"healthforce/internal/api"
	"healthforce/internal/config"
	"healthforce/internal/dataset"
	"healthforce/internal/logging"
	"healthforce/internal/metrics"
	"healthforce/internal/planner"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	addr    string
	dataDir string

	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "healthforce",
	Short: "Healthforce is a healthcare workforce planning server",
	Long: `A planning server that projects healthcare workforce supply and demand for
Saudi regions, quantifies staffing gaps with Monte Carlo confidence bounds and
serves projections, scenarios and risk analytics over a JSON API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if addr != "" {
			cfg.ListenAddr = addr
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Healthforce starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		store := dataset.NewStore()
		if err := store.Load(cfg.DataDir); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to load dataset")
		}

		var scenarios []analytics.Scenario
		if cfg.ScenariosFile != "" {
			var err error
			scenarios, err = analytics.LoadScenarios(cfg.ScenariosFile)
			if err != nil {
				log.Fatal().Err(err).Str("path", cfg.ScenariosFile).Msg("Failed to load scenarios")
			}
			log.Info().Int("scenarios", len(scenarios)).Str("path", cfg.ScenariosFile).Msg("Scenario overrides loaded")
		}

		m := metrics.New()
		service := planner.New(store, planner.Options{
			BaseYear:    cfg.BaseYear,
			Iterations:  cfg.Iterations,
			Confidence:  cfg.Confidence,
			MaxParallel: cfg.MaxParallel,
			Seed:        cfg.Seed,
			Scenarios:   scenarios,
			Metrics:     m,
		})
		server := api.NewServer(cfg.ListenAddr, service, store, m, Version)

		go func() {
			if err := server.Start(); err != nil {
				log.Fatal().Err(err).Msg("HTTP server failed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	rootCmd.Flags().StringVar(&dataDir, "data", "", "dataset directory (overrides DATA_DIR)")
}
