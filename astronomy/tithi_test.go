package astronomy

import (
	"context"
	"testing"
	"time"

	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	observability.NewLocalObserver()
}

func testManager() *ephemeris.Manager {
	return ephemeris.NewManager(ephemeris.NewHarmonicProvider(), ephemeris.NewQuickProvider(), ephemeris.NewMemoryCache(256, time.Hour))
}

func testJDForDate(date time.Time) ephemeris.JulianDay {
	return ephemeris.TimeToJulianDay(date)
}

func TestMoonSunElongationRange(t *testing.T) {
	ctx := context.Background()
	manager := testManager()
	jd := float64(ephemeris.TimeToJulianDay(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))

	diff, err := MoonSunElongation(ctx, manager, jd)
	require.NoError(t, err)
	assert.True(t, diff >= 0 && diff < 360)
}

func TestTithiAtBasicProperties(t *testing.T) {
	ctx := context.Background()
	calc := NewTithiCalculator(testManager())
	jd := float64(ephemeris.TimeToJulianDay(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))

	tithi, err := calc.TithiAt(ctx, jd)
	require.NoError(t, err)
	require.NoError(t, ValidateTithiCalculation(tithi))

	assert.True(t, tithi.Number >= 1 && tithi.Number <= 30)
	assert.NotEmpty(t, tithi.Name)
	assert.True(t, tithi.EndTime.After(tithi.StartTime))
	assert.True(t, tithi.Duration > 0 && tithi.Duration < 30)
}

func TestTithiAtBoundaryBracketsRequestedInstant(t *testing.T) {
	ctx := context.Background()
	calc := NewTithiCalculator(testManager())
	requested := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	jd := float64(ephemeris.TimeToJulianDay(requested))

	tithi, err := calc.TithiAt(ctx, jd)
	require.NoError(t, err)

	assert.True(t, !requested.Before(tithi.StartTime))
	assert.True(t, requested.Before(tithi.EndTime))
}

func TestTithiAtPakshaClassification(t *testing.T) {
	ctx := context.Background()
	calc := NewTithiCalculator(testManager())

	for _, jdOffset := range []float64{0, 3, 10, 16, 22, 28} {
		jd := float64(ephemeris.TimeToJulianDay(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))) + jdOffset
		tithi, err := calc.TithiAt(ctx, jd)
		require.NoError(t, err)

		if tithi.Number <= 15 {
			assert.True(t, tithi.IsShukla)
			assert.Equal(t, "Shukla", tithi.Paksha)
			assert.Equal(t, tithi.Number, tithi.PakshaDay)
		} else {
			assert.False(t, tithi.IsShukla)
			assert.Equal(t, "Krishna", tithi.Paksha)
			assert.Equal(t, tithi.Number-15, tithi.PakshaDay)
		}
	}
}

func TestTithiAtSunriseConsecutiveDaysAdvance(t *testing.T) {
	ctx := context.Background()
	calc := NewTithiCalculator(testManager())
	loc := Location{Latitude: 13.0827, Longitude: 80.2707, UTCOffset: 5.5} // Chennai

	today, err := calc.TithiAtSunrise(ctx, loc, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	tomorrow, err := calc.TithiAtSunrise(ctx, loc, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Amavasya (new moon on 2024-03-10) gives way to Pratipada by the next
	// sunrise, so the tithi does not repeat across these two days.
	assert.NotEqual(t, today.Number, tomorrow.Number)
}

func TestGetTithiTypeDescriptionCoversAllTypes(t *testing.T) {
	for _, tt := range []TithiType{TithiTypeNanda, TithiTypeBhadra, TithiTypeJaya, TithiTypeRikta, TithiTypePurna} {
		assert.NotEmpty(t, GetTithiTypeDescription(tt))
	}
}

func TestGetTithiTypeBoundaries(t *testing.T) {
	assert.Equal(t, TithiTypeNanda, getTithiType(1))
	assert.Equal(t, TithiTypeBhadra, getTithiType(2))
	assert.Equal(t, TithiTypeJaya, getTithiType(3))
	assert.Equal(t, TithiTypeRikta, getTithiType(4))
	assert.Equal(t, TithiTypePurna, getTithiType(5))
	assert.Equal(t, TithiTypePurna, getTithiType(15))
}

func TestValidateTithiCalculationRejectsNil(t *testing.T) {
	err := ValidateTithiCalculation(nil)
	assert.Error(t, err)
}

func TestValidateTithiCalculationRejectsOutOfRangeNumber(t *testing.T) {
	tithi := &TithiInfo{Number: 31, PakshaDay: 1, Paksha: "Shukla", MoonSunDiff: 10, StartTime: time.Now(), EndTime: time.Now().Add(time.Hour)}
	err := ValidateTithiCalculation(tithi)
	assert.Error(t, err)
}

func TestValidateTithiCalculationRejectsBadEndTime(t *testing.T) {
	now := time.Now()
	tithi := &TithiInfo{Number: 5, PakshaDay: 5, Paksha: "Shukla", MoonSunDiff: 50, StartTime: now, EndTime: now.Add(-time.Hour)}
	err := ValidateTithiCalculation(tithi)
	assert.Error(t, err)
}

func TestTithiNamesAndPakshaNamesComplete(t *testing.T) {
	for i := 1; i <= 30; i++ {
		assert.NotEmpty(t, TithiNames[i])
	}
	for i := 1; i <= 15; i++ {
		assert.NotEmpty(t, PakshaNames[i])
	}
}
