package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netoph/f1-2026-predictor/internal/scheduler"
	"github.com/netoph/f1-2026-predictor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metricsPath := ""
		if cfg.Metrics.Enabled {
			metricsPath = cfg.Metrics.Path
		}
		srv, err := server.NewServer(a.predictor, server.Config{
			Version:        Version,
			Addr:           cfg.Server.Addr(),
			AllowedOrigins: cfg.Server.AllowedOrigins,
			ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
			MetricsPath:    metricsPath,
			DataSources: []string{
				fmt.Sprintf("jolpica_%d", cfg.Ratings.PreviousSeason),
				fmt.Sprintf("jolpica_%d", cfg.Ratings.CurrentSeason),
			},
			Logger: appLog,
		})
		if err != nil {
			return err
		}

		sched := scheduler.NewScheduler(a.ratings, appLog)
		if err := sched.ScheduleRatingsRefresh(cfg.Ratings.RefreshSchedule); err != nil {
			return fmt.Errorf("failed to schedule ratings refresh: %w", err)
		}
		if cfg.Ratings.RefreshSchedule != "" {
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}
		// warm the ratings cache without delaying startup
		go sched.RunRatingsRefresh()

		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		srv.SetReady(true)
		appLog.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr(),
			"version": Version,
			"commit":  GitCommit,
		}).Info("Predictor API ready")

		<-ctx.Done()
		appLog.Info("Shutdown signal received")
		if a.client != nil {
			_ = a.client.Close()
		}
		return srv.Shutdown()
	},
}
