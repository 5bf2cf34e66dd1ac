package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georef-api/internal/pkg/logger"
	"github.com/georef-api/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply index schema migrations",
	Long:      `Migrate runs every migrations/*.up.sql (or *.down.sql, newest first) against the index database.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(postgres.MigrateUp), string(postgres.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")

		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		db, err := postgres.New(&cfg.IndexDB, log)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := postgres.ApplyMigrations(cmd.Context(), db, dir, postgres.MigrationDirection(args[0]))
		if err != nil {
			return err
		}

		log.Info("Migrations applied",
			zap.String("direction", args[0]),
			zap.Strings("files", applied))
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("dir", "migrations", "directory with migration files")
	rootCmd.AddCommand(migrateCmd)
}
