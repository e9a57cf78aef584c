package solarcalendar

import (
	"context"
	"testing"
	"time"

	"github.com/vedavox/panchangam/astronomy"
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

func newDelhi() astronomy.Location {
	return astronomy.Location{Latitude: 28.6139, Longitude: 77.2090, UTCOffset: 5.5}
}

func TestMonthNameRangeAndRotation(t *testing.T) {
	name, err := MonthName(Tamil, 1)
	require.NoError(t, err)
	assert.Equal(t, "Chithirai", name)

	name, err = MonthName(Malayalam, 1)
	require.NoError(t, err)
	assert.Equal(t, "Chingam", name)

	_, err = MonthName(Tamil, 0)
	assert.Error(t, err)
	_, err = MonthName(Tamil, 13)
	assert.Error(t, err)
}

func TestRashiToRegionalMonth(t *testing.T) {
	tamil := calendarMetas[Tamil]
	assert.Equal(t, 1, rashiToRegionalMonth(tamil, 1))
	assert.Equal(t, 12, rashiToRegionalMonth(tamil, 12))

	malayalam := calendarMetas[Malayalam]
	assert.Equal(t, 1, rashiToRegionalMonth(malayalam, 5))
	assert.Equal(t, 12, rashiToRegionalMonth(malayalam, 4))
}

func TestSankrantiJDNearMeshaCrossing(t *testing.T) {
	ctx := context.Background()
	manager := testManager()

	jdEst := float64(ephemeris.TimeToJulianDay(time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)))
	jd, err := SankrantiJD(ctx, manager, 1, jdEst)
	require.NoError(t, err)

	lambda, err := astronomy.SiderealSunLongitude(ctx, manager, jd)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, lambda, 1.0/3600.0*50, "sidereal longitude should be within a fraction of an arcsecond-scale tolerance of the rashi boundary")
}

func TestCriticalTimeJDTamilIsSunsetMinusEightMinutes(t *testing.T) {
	ctx := context.Background()
	loc := newDelhi()
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, day)
	require.NoError(t, err)

	crit, err := CriticalTimeJD(ctx, loc, day, Tamil)
	require.NoError(t, err)

	expected := float64(ephemeris.TimeToJulianDay(sunTimes.Sunset)) - 8.0/1440.0
	assert.InDelta(t, expected, crit, 1e-9)
}

func TestCriticalTimeJDOdiaFixedOffset(t *testing.T) {
	ctx := context.Background()
	loc := newDelhi()
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	crit, err := CriticalTimeJD(ctx, loc, day, Odia)
	require.NoError(t, err)

	midnightUTC := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	expected := float64(ephemeris.TimeToJulianDay(midnightUTC)) + 16.7/24.0
	assert.InDelta(t, expected, crit, 1e-9)
}

func TestCriticalTimeJDBengaliUnsupportedScalarForm(t *testing.T) {
	ctx := context.Background()
	loc := newDelhi()
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	_, err := CriticalTimeJD(ctx, loc, day, Bengali)
	assert.Error(t, err)
}

func TestBengaliAssignsNextDayKarkataAlwaysBeforeMidnight(t *testing.T) {
	ctx := context.Background()
	manager := testManager()
	loc := newDelhi()
	day := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	base := localMidnightUT(loc, day)
	jdSankranti := base + 10.0/1440.0 // 10 minutes past local midnight, inside every Karkata tuning window

	nextDay, err := BengaliAssignsNextDay(ctx, manager, loc, day, jdSankranti, 4)
	require.NoError(t, err)
	assert.False(t, nextDay)
}

func TestBengaliAssignsNextDayMakaraAlwaysAfterMidnight(t *testing.T) {
	ctx := context.Background()
	manager := testManager()
	loc := newDelhi()
	day := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)

	base := localMidnightUT(loc, day)
	jdSankranti := base + 10.0/1440.0

	nextDay, err := BengaliAssignsNextDay(ctx, manager, loc, day, jdSankranti, 10)
	require.NoError(t, err)
	assert.True(t, nextDay)
}

func TestBengaliAssignsNextDayNormalCaseComfortablyAfterBase(t *testing.T) {
	ctx := context.Background()
	manager := testManager()
	loc := newDelhi()
	day := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	base := localMidnightUT(loc, day)
	jdSankranti := base + 60.0/1440.0 // well past any tuned critical time

	nextDay, err := BengaliAssignsNextDay(ctx, manager, loc, day, jdSankranti, 1)
	require.NoError(t, err)
	assert.True(t, nextDay)
}

func TestGregorianToSolarTamilChithiraiFirst(t *testing.T) {
	ctx := context.Background()
	conv := NewConverter(testManager())
	loc := newDelhi()

	solar, err := conv.GregorianToSolar(ctx, loc, 2025, 4, 14, Tamil)
	require.NoError(t, err)
	assert.Equal(t, Tamil, solar.CalendarType)
	assert.Equal(t, 1, solar.RegionalMonth)
	assert.Equal(t, 1, solar.Rashi)
	assert.GreaterOrEqual(t, solar.DayInMonth, 1)
}

func TestGregorianToSolarMalayalamChingamFirst(t *testing.T) {
	ctx := context.Background()
	conv := NewConverter(testManager())
	loc := astronomy.Location{Latitude: 10.5, Longitude: 76.2, UTCOffset: 5.5}

	solar, err := conv.GregorianToSolar(ctx, loc, 2025, 8, 17, Malayalam)
	require.NoError(t, err)
	assert.Equal(t, 5, solar.Rashi)
	assert.Equal(t, 1, solar.RegionalMonth)
}

func TestSolarToGregorianRoundTripsTamil(t *testing.T) {
	ctx := context.Background()
	conv := NewConverter(testManager())
	loc := newDelhi()

	original, err := conv.GregorianToSolar(ctx, loc, 2025, 4, 14, Tamil)
	require.NoError(t, err)

	gregorian, err := conv.SolarToGregorian(ctx, loc, original)
	require.NoError(t, err)

	roundTripped, err := conv.GregorianToSolar(ctx, loc, gregorian.Year(), int(gregorian.Month()), gregorian.Day(), Tamil)
	require.NoError(t, err)
	assert.Equal(t, original.RegionalMonth, roundTripped.RegionalMonth)
	assert.Equal(t, original.DayInMonth, roundTripped.DayInMonth)
	assert.Equal(t, original.EraYear, roundTripped.EraYear)
}
