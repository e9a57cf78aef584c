package astronomy

import (
	"context"
	"math"
	"time"

	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// earthRadiusKm is used to derive the Moon's horizontal parallax from its
// geocentric distance.
const earthRadiusKm = 6378.14

// synodicMonthDays is the mean length of a lunar phase cycle.
const synodicMonthDays = 29.530588853

// LunarTimes holds moonrise and moonset times, in UTC, for a civil date.
type LunarTimes struct {
	Moonrise  time.Time
	Moonset   time.Time
	IsVisible bool // whether the Moon is above the horizon at 12:00 UTC on the requested date
}

// LunarPhase describes the Moon's illumination at a given instant.
type LunarPhase struct {
	Phase        float64   // 0 = new moon, 0.5 = full moon, 1 = next new moon
	Illumination float64   // percent of the disc illuminated, 0-100
	Name         string    // New Moon, Waxing Crescent, First Quarter, ...
	Age          float64   // days since the preceding new moon
	NextPhase    time.Time // estimated time of the next new moon
}

// CalculateLunarTimes calculates moonrise and moonset (UTC) for a location
// and civil date, reusing the same Meeus iterative horizon-crossing
// refinement used for the Sun, with the horizon altitude adjusted for
// lunar parallax instead of solar semidiameter.
func CalculateLunarTimes(loc Location, date time.Time) (*LunarTimes, error) {
	return CalculateLunarTimesWithContext(context.Background(), loc, date)
}

// CalculateLunarTimesWithContext is CalculateLunarTimes with OpenTelemetry
// tracing threaded through every stage.
func CalculateLunarTimesWithContext(ctx context.Context, loc Location, date time.Time) (*LunarTimes, error) {
	observer := observability.Observer()
	ctx, span := observer.CreateSpan(ctx, "CalculateLunarTimes")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("location.latitude", loc.Latitude),
		attribute.Float64("location.longitude", loc.Longitude),
		attribute.String("date", date.Format("2006-01-02")),
	)

	if err := ValidateLocation(loc); err != nil {
		span.RecordError(err)
		return nil, err
	}

	year, month, day := date.Date()
	jd0 := ephemeris.TimeToJulianDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))

	manager := sharedManager()

	samples, distKm, err := sampleLunarEquatorial(ctx, manager, jd0)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	h0 := lunarHorizonAltitude(distKm)
	span.SetAttributes(attribute.Float64("h0_degrees", h0))

	latRad := loc.Latitude * DegToRad
	decRad := samples[1].dec * DegToRad

	cosH0 := (math.Sin(h0*DegToRad) - math.Sin(latRad)*math.Sin(decRad)) / (math.Cos(latRad) * math.Cos(decRad))
	if cosH0 < -1 || cosH0 > 1 {
		// The Moon does not cross the horizon on this civil day at this
		// location; this happens routinely since the lunar day is about 50
		// minutes longer than the solar day. Report visibility from the
		// 12:00 UTC altitude instead of a rise/set pair.
		noon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
		visible, vErr := isMoonAboveHorizon(ctx, manager, loc, noon)
		if vErr != nil {
			span.RecordError(vErr)
			return nil, vErr
		}
		span.SetAttributes(attribute.Bool("no_crossing_today", true))
		return &LunarTimes{IsVisible: visible}, nil
	}

	bigH0 := math.Acos(cosH0) * RadToDeg
	gast0 := ephemeris.GreenwichApparentSiderealTime(float64(jd0))

	m0 := normalizedFraction((samples[1].ra - loc.Longitude - gast0) / 360.0)
	mRise := normalizedFraction(m0 - bigH0/360.0)
	mSet := normalizedFraction(m0 + bigH0/360.0)

	riseFraction, _ := refineCrossing(loc, samples, gast0, h0, mRise)
	setFraction, _ := refineCrossing(loc, samples, gast0, h0, mSet)

	moonrise := ephemeris.JulianDayToTime(ephemeris.JulianDay(float64(jd0) + riseFraction))
	moonset := ephemeris.JulianDayToTime(ephemeris.JulianDay(float64(jd0) + setFraction))

	noon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	visible, err := isMoonAboveHorizon(ctx, manager, loc, noon)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("moonrise_utc", moonrise.Format(time.RFC3339)),
		attribute.String("moonset_utc", moonset.Format(time.RFC3339)),
		attribute.Bool("is_visible", visible),
	)

	return &LunarTimes{Moonrise: moonrise, Moonset: moonset, IsVisible: visible}, nil
}

// lunarHorizonAltitude returns the target geometric altitude (degrees) at
// which the Moon's center is considered to rise or set: Meeus section 15's
// h0 = 0.7275*pi - refraction, where pi is the Moon's horizontal parallax
// and refraction is standardRefraction rather than Meeus's 34'.
func lunarHorizonAltitude(distanceKm float64) float64 {
	parallax := math.Asin(earthRadiusKm/distanceKm) * RadToDeg
	return 0.7275*parallax - standardRefraction
}

// sampleLunarEquatorial returns three consecutive daily right ascension /
// declination samples (jd0-1, jd0, jd0+1) and the middle sample's distance,
// used for both the three-point interpolation and the parallax correction.
func sampleLunarEquatorial(ctx context.Context, manager *ephemeris.Manager, jd0 ephemeris.JulianDay) ([3]equatorialSample, float64, error) {
	var samples [3]equatorialSample
	var midDistance float64
	for i, offset := range []float64{-1, 0, 1} {
		jd := ephemeris.JulianDay(float64(jd0) + offset)
		pos, err := manager.GetMoonPosition(ctx, jd)
		if err != nil {
			return samples, 0, err
		}
		samples[i] = equatorialSample{jd: float64(jd), ra: pos.RightAscension, dec: pos.Declination}
		if offset == 0 {
			midDistance = pos.Distance
		}
	}
	return samples, midDistance, nil
}

// isMoonAboveHorizon computes the Moon's geocentric altitude at t (no
// parallax displacement) and reports whether it exceeds the horizon.
func isMoonAboveHorizon(ctx context.Context, manager *ephemeris.Manager, loc Location, t time.Time) (bool, error) {
	jd := ephemeris.TimeToJulianDay(t)
	pos, err := manager.GetMoonPosition(ctx, jd)
	if err != nil {
		return false, err
	}
	gast := ephemeris.GreenwichApparentSiderealTime(float64(jd))
	localHourAngle := normalizeSigned(gast + loc.Longitude - pos.RightAscension)

	latRad := loc.Latitude * DegToRad
	decRad := pos.Declination * DegToRad
	altitude := math.Asin(math.Sin(latRad)*math.Sin(decRad)+math.Cos(latRad)*math.Cos(decRad)*math.Cos(localHourAngle*DegToRad)) * RadToDeg

	return altitude > 0, nil
}

// CalculateLunarPhase computes the Moon's phase and illumination at date
// from the Moon-Sun elongation, the same ayanamsa-invariant quantity the
// Tithi calculator bisects on.
func CalculateLunarPhase(date time.Time) (*LunarPhase, error) {
	ctx := context.Background()
	manager := sharedManager()
	jd := float64(ephemeris.TimeToJulianDay(date))

	elongation, err := MoonSunElongation(ctx, manager, jd)
	if err != nil {
		return nil, err
	}

	phase := elongation / 360.0
	illumination := (1 - math.Cos(elongation*DegToRad)) / 2 * 100
	age := phase * synodicMonthDays

	degreesPerDay := 360.0 / synodicMonthDays
	daysToNextNewMoon := (360.0 - elongation) / degreesPerDay
	nextNewMoon := date.Add(time.Duration(daysToNextNewMoon * float64(24*time.Hour)))

	return &LunarPhase{
		Phase:        phase,
		Illumination: illumination,
		Name:         lunarPhaseName(phase),
		Age:          age,
		NextPhase:    nextNewMoon,
	}, nil
}

// lunarPhaseName classifies a phase fraction (0-1, 0=new moon) into the
// traditional eight-phase names.
func lunarPhaseName(phase float64) string {
	switch {
	case phase < 0.03 || phase > 0.97:
		return "New Moon"
	case phase < 0.22:
		return "Waxing Crescent"
	case phase < 0.28:
		return "First Quarter"
	case phase < 0.47:
		return "Waxing Gibbous"
	case phase < 0.53:
		return "Full Moon"
	case phase < 0.72:
		return "Waning Gibbous"
	case phase < 0.78:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// GetMoonriseTime returns just the moonrise time (UTC) for a location and date.
func GetMoonriseTime(loc Location, date time.Time) (time.Time, error) {
	lunarTimes, err := CalculateLunarTimes(loc, date)
	if err != nil {
		return time.Time{}, err
	}
	return lunarTimes.Moonrise, nil
}

// GetMoonsetTime returns just the moonset time (UTC) for a location and date.
func GetMoonsetTime(loc Location, date time.Time) (time.Time, error) {
	lunarTimes, err := CalculateLunarTimes(loc, date)
	if err != nil {
		return time.Time{}, err
	}
	return lunarTimes.Moonset, nil
}
