package repositories

import (
	"context"
	"database/sql"

	"heroes-marathon-bot/internal/domain"
)

// SQLite-backed implementation of the ResultRepository and ResultReader ports.
type SqliteResultRepository struct {
	results sqlResults
}

func NewSqliteResultRepository(db *sql.DB) *SqliteResultRepository {
	return &SqliteResultRepository{
		results: sqlResults{db: db, name: "sqlite result repository", rebind: questionMarks},
	}
}

func (s *SqliteResultRepository) SaveResult(ctx context.Context, r domain.Result) error {
	return s.results.save(ctx, r)
}

func (s *SqliteResultRepository) GetResult(ctx context.Context, chatID int64) (domain.Result, error) {
	return s.results.get(ctx, chatID)
}

func (s *SqliteResultRepository) ListResults(ctx context.Context) ([]domain.Result, error) {
	return s.results.list(ctx)
}
