package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

// CSVHeader is the column order of the results file.
var CSVHeader = []string{
	"chat_id",
	"name",
	"surname",
	"birthdate",
	"phone_number",
	"start_time",
	"start_latitude",
	"start_longitude",
	"finish_time",
	"finish_longitude",
	"finish_latitude",
	"distance_km",
}

// CSVResultRepository appends results to a CSV file. The header is written only
// when the file is empty. Reads return the latest row per chat id.
type CSVResultRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVResultRepository(path string) *CSVResultRepository {
	return &CSVResultRepository{path: path}
}

func (c *CSVResultRepository) SaveResult(_ context.Context, r domain.Result) error {
	if r.ChatID == 0 {
		return fmt.Errorf("csv result repository: save result: %w: chat_id is required", apperrors.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv result repository: create dir %q: %w", dir, err)
		}
	}

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csv result repository: open %q: %w", c.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csv result repository: stat %q: %w", c.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(CSVHeader); err != nil {
			return fmt.Errorf("csv result repository: write header: %w", err)
		}
	}
	if err := w.Write(toRecord(r)); err != nil {
		return fmt.Errorf("csv result repository: write chat_id=%d: %w", r.ChatID, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv result repository: flush: %w", err)
	}
	return f.Sync()
}

func (c *CSVResultRepository) GetResult(ctx context.Context, chatID int64) (domain.Result, error) {
	results, err := c.readAll()
	if err != nil {
		return domain.Result{}, err
	}

	for i := len(results) - 1; i >= 0; i-- {
		if results[i].ChatID == chatID {
			return results[i], nil
		}
	}
	return domain.Result{}, apperrors.ErrResultNotFound
}

func (c *CSVResultRepository) ListResults(context.Context) ([]domain.Result, error) {
	results, err := c.readAll()
	if err != nil {
		return nil, err
	}

	latest := make(map[int64]int, len(results))
	out := make([]domain.Result, 0, len(results))
	for _, r := range results {
		if i, ok := latest[r.ChatID]; ok {
			out[i] = r
			continue
		}
		latest[r.ChatID] = len(out)
		out = append(out, r)
	}
	return out, nil
}

func (c *CSVResultRepository) readAll() ([]domain.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv result repository: open %q: %w", c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(CSVHeader)

	results := make([]domain.Result, 0, 64)
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv result repository: read: %w", err)
		}
		if line == 1 && rec[0] == CSVHeader[0] {
			continue
		}

		res, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv result repository: line %d: %w", line, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toRecord(r domain.Result) []string {
	return []string{
		strconv.FormatInt(r.ChatID, 10),
		r.Name,
		r.Surname,
		r.Birthdate,
		r.PhoneNumber,
		r.StartTime,
		formatFloat(r.StartLatitude),
		formatFloat(r.StartLongitude),
		r.FinishTime,
		formatFloat(r.FinishLongitude),
		formatFloat(r.FinishLatitude),
		formatFloat(r.DistanceKm),
	}
}

func fromRecord(rec []string) (domain.Result, error) {
	chatID, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return domain.Result{}, fmt.Errorf("parse chat_id %q: %w", rec[0], err)
	}

	floats := make([]float64, 0, 5)
	for _, i := range []int{6, 7, 9, 10, 11} {
		f, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return domain.Result{}, fmt.Errorf("parse %s %q: %w", CSVHeader[i], rec[i], err)
		}
		floats = append(floats, f)
	}

	return domain.Result{
		ChatID:          chatID,
		Name:            rec[1],
		Surname:         rec[2],
		Birthdate:       rec[3],
		PhoneNumber:     rec[4],
		StartTime:       rec[5],
		StartLatitude:   floats[0],
		StartLongitude:  floats[1],
		FinishTime:      rec[8],
		FinishLongitude: floats[2],
		FinishLatitude:  floats[3],
		DistanceKm:      floats[4],
	}, nil
}
