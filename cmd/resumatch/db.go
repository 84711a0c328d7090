package main

import (
	"context"
	"fmt"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/database/seeder"
	"resume-match/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db database.DB, log *zap.Logger) error {
			return migrate(ctx, db, log)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and load the sample job catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db database.DB, log *zap.Logger) error {
			if err := migrate(ctx, db, log); err != nil {
				return err
			}
			return seeder.Runner{Seeders: seeder.Defaults(), Log: log.Named("seeder")}.Run(ctx, db)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func withDB(ctx context.Context, fn func(context.Context, database.DB, *zap.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connCtx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db, log)
}

func migrate(ctx context.Context, db database.DB, log *zap.Logger) error {
	n, err := migration.Runner{FS: migrations.FS, Log: log.Named("migration")}.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrations applied", zap.Int("count", n))
	return nil
}
