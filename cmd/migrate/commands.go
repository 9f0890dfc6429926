package main

import (
	"context"
	"fmt"

	"stockstores-be/internal/config"
	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Schema management for the StockStores entity store",
		Long: `Applies the embedded Postgres migrations or creates the MongoDB
indexes, depending on the subcommand. Connection settings come from the
same environment as the API server.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(db.MigrateUp, "Apply all pending Postgres migrations"),
		newMigrateCmd(db.MigrateDown, "Roll back the last Postgres migration"),
		newIndexesCmd(),
	)
	return root
}

func newMigrateCmd(direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   direction,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.OpenPostgres(cmd.Context(), cfg.DBURL, cfg.DBTimeout)
			if err != nil {
				return fmt.Errorf("failed to connect to postgres: %w", err)
			}
			defer conn.Close()

			if err := db.Migrate(conn, direction); err != nil {
				return err
			}
			logger.L().Info("migrations applied", zap.String("direction", direction))
			return nil
		},
	}
}

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, database, err := db.ConnectMongo(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.DBTimeout)
			if err != nil {
				return fmt.Errorf("failed to connect to mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			if err := db.EnsureIndexes(ctx, database); err != nil {
				return err
			}
			logger.L().Info("indexes ensured", zap.String("database", cfg.MongoDatabase))
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.AppEnv)
	return cfg, nil
}
