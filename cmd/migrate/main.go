package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/contactbook/backend/internal/config"
	"github.com/contactbook/backend/internal/logging"
	"github.com/contactbook/backend/internal/migrate"
)

var (
	databaseURL string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the contacts schema to PostgreSQL",
	Long: `Manage the PostgreSQL schema of the contact store.

Without a subcommand all pending migrations are applied (same as "up").
The database is taken from --database-url, then DATABASE_URL.`,
	SilenceUsage: true,
	RunE:         runMigration("up", migrate.Up),
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigration("up", migrate.Up),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE:  runMigration("down", migrate.Down),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	RunE:  runMigration("status", migrate.Status),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back every migration and re-apply them (destroys data)",
	RunE:  runMigration("reset", migrate.Reset),
}

func runMigration(name string, fn func(context.Context, string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if err := fn(ctx, resolveDatabaseURL()); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
		slog.Info("migration finished", "command", name)
		return nil
	}
}

func resolveDatabaseURL() string {
	if databaseURL != "" {
		return databaseURL
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	return config.Default().DatabaseURL
}

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string (or set DATABASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, resetCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logging.Fatal("migration failed", "error", err)
	}
}
