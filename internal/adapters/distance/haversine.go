package distance

import (
	"context"
	"fmt"
	"math"

	"heroes-marathon-bot/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two points given in degrees.
// Inputs are not range checked; see HaversineProvider for the validated variant.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Clamp rounding drift so sqrt(1-h) never sees a negative argument.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// HaversineProvider implements DistanceProvider with the haversine formula.
// It is stateless and safe for concurrent use.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (HaversineProvider) GetDistance(_ context.Context, start, finish domain.Coordinates) (float64, error) {
	if err := start.Validate(); err != nil {
		return 0, fmt.Errorf("haversine distance: start: %w", err)
	}
	if err := finish.Validate(); err != nil {
		return 0, fmt.Errorf("haversine distance: finish: %w", err)
	}

	return Haversine(start, finish), nil
}
