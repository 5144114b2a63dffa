package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/hotel-pms/db"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply or roll back the SQL migrations",
		Long:  `Apply the SQL migrations compiled into the binary. --dir reads them from disk instead.`,
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "read migrations from this directory instead of the embedded set")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer sqlDB.Close()

	dir := db.MigrationsDir
	if migrateDir != "" {
		if _, err := os.Stat(migrateDir); err != nil {
			return fmt.Errorf("migrations directory: %w", err)
		}
		goose.SetBaseFS(nil)
		dir = migrateDir
	} else {
		goose.SetBaseFS(db.Migrations)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}

	lg.Info("running migrations", "command", command, "dir", dir)
	if err := goose.RunContext(ctx, command, sqlDB, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
