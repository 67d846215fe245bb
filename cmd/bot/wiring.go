package main

import (
	"context"
	"database/sql"
	"fmt"

	"heroes-marathon-bot/internal/adapters/repositories"
	"heroes-marathon-bot/internal/adapters/sessions"
	"heroes-marathon-bot/internal/platform/config"
	"heroes-marathon-bot/internal/platform/db"
	"heroes-marathon-bot/internal/ports"
)

type resultStore interface {
	ports.ResultRepository
	ports.ResultReader
}

type resultSink struct {
	repo   ports.ResultRepository
	reader ports.ResultReader
	close  func()
}

func newSink(store resultStore, conn *sql.DB) resultSink {
	closeFn := func() {}
	if conn != nil {
		closeFn = func() { _ = conn.Close() }
	}
	return resultSink{repo: store, reader: store, close: closeFn}
}

func openResultSink(cfg config.Config) (resultSink, error) {
	switch cfg.Sink {
	case config.SinkPostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return resultSink{}, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return resultSink{}, err
		}
		return newSink(repositories.NewPostgresResultRepository(conn), conn), nil

	case config.SinkSqlite:
		conn, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return resultSink{}, err
		}
		if err := repositories.InitSqliteSchema(conn); err != nil {
			_ = conn.Close()
			return resultSink{}, err
		}
		return newSink(repositories.NewSqliteResultRepository(conn), conn), nil

	case config.SinkCSV:
		return newSink(repositories.NewCSVResultRepository(cfg.CSVPath), nil), nil
	}

	return resultSink{}, fmt.Errorf("open result sink: unknown sink %q", cfg.Sink)
}

func openSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionsRedis:
		client, err := sessions.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return sessions.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil

	case config.SessionsMemory:
		return sessions.NewMemoryStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("open session store: unknown backend %q", cfg.SessionBackend)
}
