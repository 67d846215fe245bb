package distance

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"heroes-marathon-bot/internal/domain"
	apperrors "heroes-marathon-bot/internal/platform/errors"
)

func TestHaversineKnownDistances(t *testing.T) {
	cases := []struct {
		name string
		a, b domain.Coordinates
		want float64
		tol  float64
	}{
		{"equator to pole", domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 90, Lon: 0}, 10007.54, 0.05},
		{"tenth of a degree north", domain.Coordinates{Lat: 48.0, Lon: 24.0}, domain.Coordinates{Lat: 48.1, Lon: 24.0}, 11.12, 0.01},
		{"quarter of the equator", domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 90}, 10007.54, 0.05},
		{"antipodes", domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 180}, math.Pi * EarthRadiusKm, 1e-6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Haversine(tc.a, tc.b)
			require.InDelta(t, tc.want, got, tc.tol)
		})
	}
}

func TestHaversineIdenticalPointsIsZero(t *testing.T) {
	for _, p := range []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 48.1234, Lon: 24.5678}, {Lat: -89.9, Lon: 179.9}} {
		require.Zero(t, Haversine(p, p))
	}
}

func TestHaversineSymmetric(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 50.4501, Lon: 30.5234},
		{Lat: 49.8397, Lon: 24.0297},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: 0, Lon: 0},
	}
	for _, a := range points {
		for _, b := range points {
			require.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
		}
	}
}

func TestHaversineProviderRejectsOutOfRange(t *testing.T) {
	p := NewHaversineProvider()
	ctx := context.Background()

	_, err := p.GetDistance(ctx, domain.Coordinates{Lat: 91, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 0})
	require.True(t, errors.Is(err, apperrors.ErrInvalidCoordinates))
	require.Contains(t, err.Error(), "start")

	_, err = p.GetDistance(ctx, domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: -200})
	require.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	require.Contains(t, err.Error(), "finish")

	km, err := p.GetDistance(ctx, domain.Coordinates{Lat: 48.0, Lon: 24.0}, domain.Coordinates{Lat: 48.1, Lon: 24.0})
	require.NoError(t, err)
	require.InDelta(t, 11.12, km, 0.01)
}
