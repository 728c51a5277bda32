package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"training-quiz/database"
	"training-quiz/internal/config"
	internaldb "training-quiz/internal/database"
	"training-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the training Oracle schema",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *internaldb.Migrator) error {
			count, err := m.Up(ctx)
			if err != nil {
				return err
			}
			logger.Get().Info("Migrations complete", zap.Int("applied", count))
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *internaldb.Migrator) error {
			reverted, err := m.Down(ctx)
			if err != nil {
				return err
			}
			if !reverted {
				logger.Get().Info("No applied migrations to revert")
			}
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *internaldb.Migrator) error {
			migrations, err := m.List(ctx)
			if err != nil {
				return err
			}
			for _, mig := range migrations {
				state := "pending"
				if mig.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%06d  %-40s %s\n", mig.Version, mig.Name, state)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(listCmd)
}

func withMigrator(ctx context.Context, fn func(context.Context, *internaldb.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()

	db, err := internaldb.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := internaldb.NewMigrator(db, database.Migrations, database.MigrationsDir)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(ctx, m)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
