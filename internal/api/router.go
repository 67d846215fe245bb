package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"heroes-marathon-bot/internal/api/handlers"
	"heroes-marathon-bot/internal/ports"
)

// NewRouter wires the ops endpoints with their dependencies and returns an http.Handler.
func NewRouter(results ports.ResultReader, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	resultHandler := &handlers.ResultHandler{Results: results, Log: log}

	r.Get("/health", handlers.Health)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", resultHandler.List)
		r.Get("/{chatID}", resultHandler.Get)
	})

	return r
}
