package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netoph/f1-2026-predictor/internal/config"
	"github.com/netoph/f1-2026-predictor/internal/datasource"
	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/ratings"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
	"github.com/netoph/f1-2026-predictor/internal/service"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile   string
	outputFormat string
	cfg          *config.Config
	appLog       *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(serveCmd, raceCmd, championshipCmd, backtestCmd, ratingsCmd, circuitsCmd)
}

var rootCmd = &cobra.Command{
	Use:           "predictor",
	Short:         "Monte Carlo predictions for the 2026 Formula 1 season",
	Long:          `Simulates races and the championship from team and driver strength ratings, and backtests the model against past seasons.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := config.ValidateEnvironment(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired dependencies shared by every command.
type app struct {
	season    *refdata.Season
	client    *datasource.JolpicaClient
	ratings   *ratings.Service
	predictor *service.Predictor
}

func newApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	season := refdata.Season2026()

	client, err := datasource.NewFromConfig(cfg.DataSource, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}
	// a disabled source must reach the collaborators as a nil interface
	var (
		history ratings.HistoryFetcher
		results service.ResultsFetcher
	)
	if client != nil {
		history, results = client, client
	}

	ratingsSvc, err := ratings.NewService(season, history, ratings.ServiceConfig{
		TTL:            cfg.Ratings.CacheTTL(),
		PreviousSeason: cfg.Ratings.PreviousSeason,
		CurrentSeason:  cfg.Ratings.CurrentSeason,
		Weights:        ratings.Weights{Previous: cfg.Ratings.PreviousWeight, Current: cfg.Ratings.CurrentWeight},
	}, ratings.WithLogger(log))
	if err != nil {
		return nil, err
	}

	sim, err := simulation.NewSimulator(season,
		simulation.WithNoise(cfg.Simulation.NoiseStdDev),
		simulation.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	predictor, err := service.NewPredictor(sim, ratingsSvc, results, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		season:    season,
		client:    client,
		ratings:   ratingsSvc,
		predictor: predictor,
	}, nil
}
