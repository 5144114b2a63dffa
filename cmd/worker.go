package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/hotel-pms/internal/auth"
	authPostgres "github.com/frahmantamala/hotel-pms/internal/auth/postgres"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
}

var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Purge sessions past their maximum lifetime",
	Long:  `Periodically delete sessions whose expiry has passed. Sessions without an expiry are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startSessionWorker()
	},
}

var (
	sweepInterval time.Duration
	sweepOnce     bool
)

func startSessionWorker() error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		return err
	}

	repo := authPostgres.NewRepository(gormDB)
	sessions := auth.NewSessionManager(repo, repo, auth.CookieOptionsFromConfig(cfg.Session), cfg.Session.MaxLifetime, lg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sweepOnce {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d expired session(s)\n", n)
		return nil
	}

	if cfg.Session.MaxLifetime == 0 {
		lg.Warn("session.max_lifetime is 0; only sessions created under an earlier lifetime will expire")
	}

	lg.Info("session worker started", "interval", sweepInterval)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("session worker stopped")
			return nil
		case <-ticker.C:
			if _, err := sessions.PurgeExpired(ctx); err != nil {
				lg.Error("session sweep failed", "error", err)
			}
		}
	}
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&sweepInterval, "interval", time.Hour, "time between sweeps")
	sessionWorkerCmd.Flags().BoolVar(&sweepOnce, "once", false, "sweep once and exit")

	workerCmd.AddCommand(sessionWorkerCmd)
	rootCmd.AddCommand(workerCmd)
}
