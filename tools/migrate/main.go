package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alcaldia-cabimas/cabimas-web/internal/migrations"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var sourceDir string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the fetch log schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDB(func(db *sql.DB) error {
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: withDB(func(db *sql.DB) error {
		if err := goose.Down(db, "."); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		fmt.Println("Migration rollback successful")
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of every migration",
	RunE: withDB(func(db *sql.DB) error {
		if err := goose.Status(db, "."); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		return nil
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back every migration",
	RunE: withDB(func(db *sql.DB) error {
		if err := goose.Reset(db, "."); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		fmt.Println("All migrations have been rolled back")
		return nil
	}),
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new SQL migration in the source directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Creating migration in: %s\n", sourceDir)
		if err := goose.Create(nil, sourceDir, args[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	},
}

// withDB opens the configured database with the embedded migrations before
// running fn.
func withDB(fn func(db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := migrations.Open(cfg.GetDSN())
		if err != nil {
			return err
		}
		defer db.Close()

		return fn(db)
	}
}

func main() {
	createCmd.Flags().StringVar(&sourceDir, "dir", "internal/migrations", "directory holding the SQL migrations")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, resetCmd, createCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
