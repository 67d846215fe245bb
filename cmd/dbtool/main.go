package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"heroes-marathon-bot/internal/adapters/repositories"
	"heroes-marathon-bot/internal/platform/config"
	"heroes-marathon-bot/internal/platform/db"
	"heroes-marathon-bot/internal/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var sink string

	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the marathon results database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&sink, "sink", config.Get("RESULT_SINK", config.SinkPostgres), "database to manage: postgres or sqlite")

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the results schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			conn, err := open(sink)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Println("Initializing database schema...")
			if err := initSchema(conn, sink); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Println("Schema ready.")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "import <results.json>",
		Short: "Create the schema and upsert results from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := open(sink)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := initSchema(conn, sink); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			log.Println("Importing results...")
			n, err := importResults(cmd.Context(), resultRepo(conn, sink), args[0])
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			log.Printf("Import complete: %d results.", n)
			return nil
		},
	})

	return root
}

func open(sink string) (*sql.DB, error) {
	switch strings.ToLower(sink) {
	case config.SinkPostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL is required")
		}
		return db.Open(databaseURL)
	case config.SinkSqlite:
		return db.OpenSqlite(config.Get("SQLITE_PATH", "data/marathon.db"))
	}
	return nil, fmt.Errorf("dbtool: unsupported sink %q", sink)
}

func initSchema(conn *sql.DB, sink string) error {
	if strings.ToLower(sink) == config.SinkSqlite {
		return repositories.InitSqliteSchema(conn)
	}
	return repositories.InitSchema(conn)
}

func resultRepo(conn *sql.DB, sink string) ports.ResultRepository {
	if strings.ToLower(sink) == config.SinkSqlite {
		return repositories.NewSqliteResultRepository(conn)
	}
	return repositories.NewPostgresResultRepository(conn)
}

func importResults(ctx context.Context, repo ports.ResultRepository, path string) (int, error) {
	results, err := repositories.LoadResultsJSON(path)
	if err != nil {
		return 0, err
	}

	for _, r := range results {
		if err := repo.SaveResult(ctx, r); err != nil {
			return 0, err
		}
	}
	return len(results), nil
}
