package panchangam

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"github.com/vedavox/panchangam/solarcalendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	observability.NewLocalObserver()
}

func testService() *Service {
	manager := ephemeris.NewManager(ephemeris.NewHarmonicProvider(), ephemeris.NewQuickProvider(), ephemeris.NewMemoryCache(256, time.Hour))
	return NewService(manager, DefaultConfig())
}

func newDelhi() astronomy.Location {
	return astronomy.Location{Latitude: 28.6139, Longitude: 77.2090, UTCOffset: 5.5}
}

func TestGregorianToJDRoundTrip(t *testing.T) {
	s := testService()
	jd := s.GregorianToJD(2024, 4, 9)
	y, m, d := s.JDToGregorian(jd)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 4, m)
	assert.Equal(t, 9, d)
}

func TestDayOfWeekAnchor(t *testing.T) {
	s := testService()
	jd := s.GregorianToJD(2000, 1, 1)
	assert.Equal(t, 5, s.DayOfWeek(jd)) // Saturday
}

func TestSolarLongitudeRange(t *testing.T) {
	s := testService()
	ctx := context.Background()
	jd := s.GregorianToJD(2024, 4, 9)

	lambda, err := s.SolarLongitude(ctx, jd)
	require.NoError(t, err)
	assert.True(t, lambda >= 0 && lambda < 360)
}

func TestLunarLongitudeRange(t *testing.T) {
	s := testService()
	ctx := context.Background()
	jd := s.GregorianToJD(2024, 4, 9)

	lambda, err := s.LunarLongitude(ctx, jd)
	require.NoError(t, err)
	assert.True(t, lambda >= 0 && lambda < 360)
}

func TestAyanamsaReferenceEpoch(t *testing.T) {
	s := testService()
	value := s.Ayanamsa(2435553.5)
	assert.InDelta(t, 23.245524743, value, 1.0/3600.0)
}

func TestSunriseSunsetJDOrdering(t *testing.T) {
	s := testService()
	ctx := context.Background()
	loc := newDelhi()
	jdMidnight := s.GregorianToJD(2024, 4, 9)

	sunrise, err := s.SunriseJD(ctx, jdMidnight, loc)
	require.NoError(t, err)
	sunset, err := s.SunsetJD(ctx, jdMidnight, loc)
	require.NoError(t, err)
	assert.True(t, sunrise < sunset)
}

func TestTithiAtSunrise(t *testing.T) {
	s := testService()
	ctx := context.Background()
	tithi, err := s.TithiAtSunrise(ctx, 2024, 4, 9, newDelhi())
	require.NoError(t, err)
	assert.True(t, tithi.Number >= 1 && tithi.Number <= 30)
}

func TestMasaForDate(t *testing.T) {
	s := testService()
	ctx := context.Background()
	masa, err := s.MasaForDate(ctx, 2024, 4, 9, newDelhi())
	require.NoError(t, err)
	require.NoError(t, astronomy.ValidateMasaCalculation(masa))
}

func TestGregorianToHinduBasicProperties(t *testing.T) {
	s := testService()
	ctx := context.Background()
	hindu, err := s.GregorianToHindu(ctx, 2024, 4, 9, newDelhi())
	require.NoError(t, err)
	assert.True(t, hindu.Tithi >= 1 && hindu.Tithi <= 15)
	assert.True(t, hindu.Paksha == "Shukla" || hindu.Paksha == "Krishna")
	assert.Greater(t, hindu.YearSaka, 0)
}

func TestGregorianToHinduRejectsBadLocation(t *testing.T) {
	s := testService()
	ctx := context.Background()
	_, err := s.GregorianToHindu(ctx, 2024, 4, 9, astronomy.Location{Latitude: 999})
	assert.ErrorIs(t, err, astronomy.ErrInputDomain)
}

func TestGregorianToSolarAndInverse(t *testing.T) {
	s := testService()
	ctx := context.Background()
	loc := newDelhi()

	sd, err := s.GregorianToSolar(ctx, 2025, 4, 14, loc, solarcalendar.Tamil)
	require.NoError(t, err)
	require.NoError(t, solarcalendar.ValidateSolarDate(sd))

	y, m, d, err := s.SolarToGregorian(ctx, sd, loc)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 4, m)
	assert.Equal(t, 14, d)
}

func TestFullPanchangamPopulatesEverySection(t *testing.T) {
	s := testService()
	ctx := context.Background()
	full, err := s.FullPanchangam(ctx, 2024, 4, 9, newDelhi())
	require.NoError(t, err)

	assert.NotNil(t, full.Nakshatra)
	assert.NotNil(t, full.Yoga)
	assert.NotNil(t, full.Karana)
	assert.NotNil(t, full.Vara)
	assert.NotNil(t, full.Traditional)
	assert.GreaterOrEqual(t, len(full.Festivals), 0)
	assert.Len(t, full.Solar, 4)
	for _, cal := range []solarcalendar.CalendarType{solarcalendar.Tamil, solarcalendar.Bengali, solarcalendar.Odia, solarcalendar.Malayalam} {
		assert.Contains(t, full.Solar, cal)
	}
}

func TestLocationFromTimezoneIANAZone(t *testing.T) {
	s := testService()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	loc, err := s.LocationFromTimezone("Asia/Kolkata", 28.6139, 77.2090, 0, date)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, loc.UTCOffset, 1e-9)
	assert.InDelta(t, 28.6139, loc.Latitude, 1e-9)
	assert.InDelta(t, 77.2090, loc.Longitude, 1e-9)
}

func TestLocationFromTimezoneDSTVaries(t *testing.T) {
	s := testService()
	winter := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	winterLoc, err := s.LocationFromTimezone("America/New_York", 40.7128, -74.0060, 0, winter)
	require.NoError(t, err)
	summerLoc, err := s.LocationFromTimezone("America/New_York", 40.7128, -74.0060, 0, summer)
	require.NoError(t, err)

	assert.InDelta(t, -5.0, winterLoc.UTCOffset, 1e-9)
	assert.InDelta(t, -4.0, summerLoc.UTCOffset, 1e-9)
}

func TestLocationFromTimezoneRejectsInvalidZone(t *testing.T) {
	s := testService()
	_, err := s.LocationFromTimezone("Not/AZone", 0, 0, 0, time.Now().UTC())
	assert.Error(t, err)
}

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	require.NoError(t, os.WriteFile(path, []byte("cache_size: 42\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.CacheSize)
	assert.Equal(t, DefaultConfig().CacheTTL, cfg.CacheTTL)
	assert.Len(t, cfg.RegionSolarCalendars, 4)
}

func TestLoadConfigFileMissingFile(t *testing.T) {
	_, err := LoadConfigFile("/nonexistent/config.yaml")
	assert.Error(t, err)
}
