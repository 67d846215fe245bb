package domain

import (
	"fmt"
	"math"

	apperrors "heroes-marathon-bot/internal/platform/errors"
)

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate rejects non-finite values and values outside [-90,90] x [-180,180].
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", apperrors.ErrInvalidCoordinates, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", apperrors.ErrInvalidCoordinates, c.Lon)
	}
	return nil
}
