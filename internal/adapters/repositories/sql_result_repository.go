package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

const resultColumns = `
	chat_id,
	name,
	surname,
	birthdate,
	phone_number,
	start_time,
	start_latitude,
	start_longitude,
	finish_time,
	finish_longitude,
	finish_latitude,
	distance_km`

// Both Postgres and SQLite understand ON CONFLICT ... DO UPDATE with excluded.*.
const upsertResultQuery = `
INSERT INTO marathon_results (` + resultColumns + `
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (chat_id) DO UPDATE SET
	name = excluded.name,
	surname = excluded.surname,
	birthdate = excluded.birthdate,
	phone_number = excluded.phone_number,
	start_time = excluded.start_time,
	start_latitude = excluded.start_latitude,
	start_longitude = excluded.start_longitude,
	finish_time = excluded.finish_time,
	finish_longitude = excluded.finish_longitude,
	finish_latitude = excluded.finish_latitude,
	distance_km = excluded.distance_km;
`

const getResultQuery = `SELECT` + resultColumns + `
FROM marathon_results
WHERE chat_id = $1;
`

const listResultsQuery = `SELECT` + resultColumns + `
FROM marathon_results
ORDER BY finish_time, chat_id;
`

var pgPlaceholder = regexp.MustCompile(`\$\d+`)

// sqlResults implements the result ports over database/sql. Queries are written
// with Postgres placeholders and rebound for drivers that only take "?".
type sqlResults struct {
	db     *sql.DB
	name   string
	rebind func(string) string
}

func (s *sqlResults) save(ctx context.Context, r domain.Result) error {
	if s.db == nil {
		return fmt.Errorf("%s: DB is nil", s.name)
	}
	if r.ChatID == 0 {
		return fmt.Errorf("%s: save result: %w: chat_id is required", s.name, apperrors.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, s.rebind(upsertResultQuery),
		r.ChatID,
		r.Name,
		r.Surname,
		r.Birthdate,
		r.PhoneNumber,
		r.StartTime,
		r.StartLatitude,
		r.StartLongitude,
		r.FinishTime,
		r.FinishLongitude,
		r.FinishLatitude,
		r.DistanceKm,
	)
	if err != nil {
		return fmt.Errorf("%s: upsert chat_id=%d: %w", s.name, r.ChatID, err)
	}
	return nil
}

func (s *sqlResults) get(ctx context.Context, chatID int64) (domain.Result, error) {
	if s.db == nil {
		return domain.Result{}, fmt.Errorf("%s: DB is nil", s.name)
	}

	r, err := scanResult(s.db.QueryRowContext(ctx, s.rebind(getResultQuery), chatID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Result{}, apperrors.ErrResultNotFound
	}
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: get chat_id=%d: %w", s.name, chatID, err)
	}
	return r, nil
}

func (s *sqlResults) list(ctx context.Context) ([]domain.Result, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%s: DB is nil", s.name)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(listResultsQuery))
	if err != nil {
		return nil, fmt.Errorf("%s: list results: query marathon_results table: %w", s.name, err)
	}
	defer rows.Close()

	results := make([]domain.Result, 0, 64)
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: list results: scan row: %w", s.name, err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list results: row iteration: %w", s.name, err)
	}

	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (domain.Result, error) {
	var r domain.Result
	err := row.Scan(
		&r.ChatID,
		&r.Name,
		&r.Surname,
		&r.Birthdate,
		&r.PhoneNumber,
		&r.StartTime,
		&r.StartLatitude,
		&r.StartLongitude,
		&r.FinishTime,
		&r.FinishLongitude,
		&r.FinishLatitude,
		&r.DistanceKm,
	)
	return r, err
}

func identity(q string) string { return q }

func questionMarks(q string) string {
	return pgPlaceholder.ReplaceAllString(q, "?")
}
