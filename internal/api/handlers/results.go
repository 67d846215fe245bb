package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"heroes-marathon-bot/internal/api/dto"
	apperrors "heroes-marathon-bot/internal/platform/errors"
	"heroes-marathon-bot/internal/ports"
)

// ResultHandler exposes read-only access to finished runs.
type ResultHandler struct {
	Results ports.ResultReader
	Log     *zap.Logger
}

func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.Results.ListResults(r.Context())
	if err != nil {
		internalError(w, r, h.Log, "list results", err)
		return
	}

	res := dto.ListResultsResponse{
		Count:   len(results),
		Results: make([]dto.ResultResponse, 0, len(results)),
	}
	for _, result := range results {
		res.Results = append(res.Results, dto.FromResult(result))
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "chatID must be an integer")
		return
	}

	result, err := h.Results.GetResult(r.Context(), chatID)
	if errors.Is(err, apperrors.ErrResultNotFound) {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	if err != nil {
		internalError(w, r, h.Log, "get result", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromResult(result))
}
