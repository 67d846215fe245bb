package distance

import (
	"context"

	"heroes-marathon-bot/internal/domain"
)

// MockDistanceProvider returns a fixed distance (or error) and records its inputs.
type MockDistanceProvider struct {
	Km    float64
	Err   error
	Calls [][2]domain.Coordinates
}

func NewMockDistanceProvider(km float64, err error) *MockDistanceProvider {
	return &MockDistanceProvider{Km: km, Err: err}
}

func (p *MockDistanceProvider) GetDistance(_ context.Context, start, finish domain.Coordinates) (float64, error) {
	p.Calls = append(p.Calls, [2]domain.Coordinates{start, finish})
	if p.Err != nil {
		return 0, p.Err
	}
	return p.Km, nil
}
