package repositories

import (
	"context"
	"database/sql"

	"heroes-marathon-bot/internal/domain"
)

// Postgres-backed implementation of the ResultRepository and ResultReader ports.
// One row per chat id; a repeated finish overwrites the previous row.
type PostgresResultRepository struct {
	results sqlResults
}

func NewPostgresResultRepository(db *sql.DB) *PostgresResultRepository {
	return &PostgresResultRepository{
		results: sqlResults{db: db, name: "postgres result repository", rebind: identity},
	}
}

func (p *PostgresResultRepository) SaveResult(ctx context.Context, r domain.Result) error {
	return p.results.save(ctx, r)
}

func (p *PostgresResultRepository) GetResult(ctx context.Context, chatID int64) (domain.Result, error) {
	return p.results.get(ctx, chatID)
}

func (p *PostgresResultRepository) ListResults(ctx context.Context) ([]domain.Result, error) {
	return p.results.list(ctx)
}
