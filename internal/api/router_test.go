package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"heroes-marathon-bot/internal/api/dto"
	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

type fakeReader struct {
	results []domain.Result
	err     error
}

func (f *fakeReader) GetResult(_ context.Context, chatID int64) (domain.Result, error) {
	if f.err != nil {
		return domain.Result{}, f.err
	}
	for _, r := range f.results {
		if r.ChatID == chatID {
			return r, nil
		}
	}
	return domain.Result{}, apperrors.ErrResultNotFound
}

func (f *fakeReader) ListResults(context.Context) ([]domain.Result, error) {
	return f.results, f.err
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h := NewRouter(&fakeReader{}, nil)

	rec := serve(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(t, h, http.MethodPost, "/health")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResultsEndpoints(t *testing.T) {
	reader := &fakeReader{results: []domain.Result{{
		ChatID:          42,
		Name:            "Olena",
		PhoneNumber:     "+380501112233",
		StartLatitude:   48,
		StartLongitude:  24,
		FinishLatitude:  48.1,
		FinishLongitude: 24,
		DistanceKm:      11.12,
	}}}
	h := NewRouter(reader, nil)

	rec := serve(t, h, http.MethodGet, "/results")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list dto.ListResultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	require.Equal(t, 48.1, list.Results[0].Finish.Lat)
	require.NotContains(t, rec.Body.String(), "+380501112233")

	rec = serve(t, h, http.MethodGet, "/results/42")
	require.Equal(t, http.StatusOK, rec.Code)

	var one dto.ResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	require.Equal(t, "Olena", one.Name)
	require.Equal(t, 11.12, one.DistanceKm)

	require.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/results/7").Code)
	require.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/results/abc").Code)
}

func TestResultsStoreFailure(t *testing.T) {
	h := NewRouter(&fakeReader{err: errors.New("db down")}, nil)

	rec := serve(t, h, http.MethodGet, "/results")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	rec = serve(t, h, http.MethodGet, "/results/1")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
