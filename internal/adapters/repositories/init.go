package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"heroes-marathon-bot/internal/domain"
)

const postgresResultsTable = `
CREATE TABLE IF NOT EXISTS marathon_results (
	chat_id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	surname TEXT NOT NULL,
	birthdate TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	start_time TEXT NOT NULL,
	start_latitude DOUBLE PRECISION NOT NULL,
	start_longitude DOUBLE PRECISION NOT NULL,
	finish_time TEXT NOT NULL,
	finish_longitude DOUBLE PRECISION NOT NULL,
	finish_latitude DOUBLE PRECISION NOT NULL,
	distance_km DOUBLE PRECISION NOT NULL
);
`

const sqliteResultsTable = `
CREATE TABLE IF NOT EXISTS marathon_results (
	chat_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	surname TEXT NOT NULL,
	birthdate TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	start_time TEXT NOT NULL,
	start_latitude REAL NOT NULL,
	start_longitude REAL NOT NULL,
	finish_time TEXT NOT NULL,
	finish_longitude REAL NOT NULL,
	finish_latitude REAL NOT NULL,
	distance_km REAL NOT NULL
);
`

const finishTimeIndex = `
CREATE INDEX IF NOT EXISTS idx_marathon_results_finish_time
ON marathon_results(finish_time);
`

// Initialize the Postgres schema for run results.
func InitSchema(db *sql.DB) error {
	return initSchema(db, postgresResultsTable, finishTimeIndex)
}

// Initialize the SQLite schema for run results.
func InitSqliteSchema(db *sql.DB) error {
	return initSchema(db, sqliteResultsTable, finishTimeIndex)
}

func initSchema(db *sql.DB, statements ...string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// LoadResultsJSON reads an exported JSON array of results, e.g. for restoring a sink.
func LoadResultsJSON(jsonPath string) ([]domain.Result, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load results: read %q: %w", jsonPath, err)
	}

	var data []domain.Result
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load results: parse json: %w", err)
	}

	for i, r := range data {
		if r.ChatID == 0 {
			return nil, fmt.Errorf("load results: item at index %d: chat_id is required", i+1)
		}
	}

	return data, nil
}
