package ephemeris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLagrangeLongitudeReproducesSamples(t *testing.T) {
	points := []LongitudePoint{
		{JD: 2451545.0, Longitude: 280.0},
		{JD: 2451546.0, Longitude: 281.0},
		{JD: 2451547.0, Longitude: 282.0},
		{JD: 2451548.0, Longitude: 283.0},
		{JD: 2451549.0, Longitude: 284.0},
	}

	for _, p := range points {
		got, err := LagrangeLongitude(points, p.JD)
		require.NoError(t, err)
		assert.InDelta(t, p.Longitude, got, 1e-6)
	}
}

func TestLagrangeLongitudeHandlesWraparound(t *testing.T) {
	points := []LongitudePoint{
		{JD: 0, Longitude: 358},
		{JD: 1, Longitude: 359},
		{JD: 2, Longitude: 0},
		{JD: 3, Longitude: 1},
		{JD: 4, Longitude: 2},
	}

	got, err := LagrangeLongitude(points, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-6)
}

func TestInverseLagrangeCrossingLinearCase(t *testing.T) {
	// A strictly linear longitude curve crossing 0 at jd=10.
	points := make([]LongitudePoint, 0, 17)
	for i := -8; i <= 8; i++ {
		jd := 10.0 + float64(i)
		points = append(points, LongitudePoint{JD: jd, Longitude: 13.2 * float64(i)})
	}

	jd, err := InverseLagrangeCrossing(points, 0.0)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, jd, 1e-6)
}

func TestInverseLagrangeCrossingNearWraparound(t *testing.T) {
	points := make([]LongitudePoint, 0, 9)
	for i := -4; i <= 4; i++ {
		jd := 100.0 + float64(i)
		lon := normalizeDegrees(359.0 + 13.0*float64(i))
		points = append(points, LongitudePoint{JD: jd, Longitude: lon})
	}

	jd, err := InverseLagrangeCrossing(points, 0.0)
	require.NoError(t, err)
	assert.True(t, math.Abs(jd-100.0-1.0/13.0) < 0.05)
}

func TestSampleLongitudes(t *testing.T) {
	samples := SampleLongitudes(func(jd float64) float64 {
		return normalizeDegrees(jd)
	}, 50.0, 17)

	require.Len(t, samples, 17)
	assert.InDelta(t, 42.0, samples[0].JD, 1e-9)
	assert.InDelta(t, 58.0, samples[16].JD, 1e-9)
}
