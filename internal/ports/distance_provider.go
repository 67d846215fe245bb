package ports

import (
	"context"

	"heroes-marathon-bot/internal/domain"
)

// Contract for computing the surface distance between two geographic points.
type DistanceProvider interface {
	// Return the distance in kilometers between start and finish.
	GetDistance(ctx context.Context, start, finish domain.Coordinates) (float64, error)
}
