package astronomy

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180
	// RadToDeg converts radians to degrees.
	RadToDeg = 180 / math.Pi

	// standardRefraction is the atmospheric refraction at the horizon, in
	// degrees, per the Sinclair formula's horizon value.
	standardRefraction = 0.612
	// solarSemidiameter is the Sun's mean angular semidiameter in degrees.
	solarSemidiameter = 0.2666
)

// ErrNoRise indicates the Sun never rises on the given date at the given
// latitude (polar night: the Sun stays below the horizon all day).
var ErrNoRise = errors.New("astronomy: sun does not rise on this date at this location")

// ErrNoSet indicates the Sun never sets on the given date at the given
// latitude (polar day: the Sun stays above the horizon all day).
var ErrNoSet = errors.New("astronomy: sun does not set on this date at this location")

// Location represents a geographic location used for rise/set and
// panchangam calculations.
type Location struct {
	Latitude  float64 // degrees, positive north
	Longitude float64 // degrees, positive east
	Altitude  float64 // meters above sea level, used for the horizon dip correction
	UTCOffset float64 // hours east of UTC, used to express results as civil local time
}

// SunTimes holds sunrise and sunset times, in UTC.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

var (
	defaultManagerOnce sync.Once
	defaultManager     *ephemeris.Manager
)

func sharedManager() *ephemeris.Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = ephemeris.NewDefaultManager()
	})
	return defaultManager
}

// CalculateSunTimes calculates sunrise and sunset times (UTC) for a
// location and civil date, using the iterative refinement described in
// Meeus chapter 15.
func CalculateSunTimes(loc Location, date time.Time) (*SunTimes, error) {
	return CalculateSunTimesWithContext(context.Background(), loc, date)
}

// CalculateSunTimesWithContext is CalculateSunTimes with OpenTelemetry
// tracing threaded through every stage.
func CalculateSunTimesWithContext(ctx context.Context, loc Location, date time.Time) (*SunTimes, error) {
	observer := observability.Observer()
	ctx, span := observer.CreateSpan(ctx, "CalculateSunTimes")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("location.latitude", loc.Latitude),
		attribute.Float64("location.longitude", loc.Longitude),
		attribute.Float64("location.altitude", loc.Altitude),
		attribute.String("date", date.Format("2006-01-02")),
	)

	if err := ValidateLocation(loc); err != nil {
		span.RecordError(err)
		observability.RecordValidationFailure(ctx, "location", loc, err.Error())
		return nil, err
	}

	year, month, day := date.Date()
	localMidnightUTC := ephemeris.TimeToJulianDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	// jd_for_date is local civil midnight converted to UT by subtracting
	// utc_offset/24, not plain Gregorian-date UTC midnight.
	jd0 := ephemeris.JulianDay(float64(localMidnightUTC) - loc.UTCOffset/24.0)

	h0 := horizonAltitude(loc.Altitude)
	span.SetAttributes(attribute.Float64("h0_degrees", h0))

	manager := sharedManager()

	samples, err := sampleSolarEquatorial(ctx, manager, jd0)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	latRad := loc.Latitude * DegToRad
	decRad := samples[1].dec * DegToRad

	cosH0 := (math.Sin(h0*DegToRad) - math.Sin(latRad)*math.Sin(decRad)) / (math.Cos(latRad) * math.Cos(decRad))
	if cosH0 < -1 {
		span.SetAttributes(attribute.String("condition", "polar_day"))
		observability.RecordError(ctx, ErrNoSet, observability.ErrorContext{
			Severity: observability.SeverityLow, Category: observability.CategoryCalculation,
			Operation: "CalculateSunTimes", Component: "astronomy.sunrise", ExpectedErr: true,
		})
		return nil, ErrNoSet
	}
	if cosH0 > 1 {
		span.SetAttributes(attribute.String("condition", "polar_night"))
		observability.RecordError(ctx, ErrNoRise, observability.ErrorContext{
			Severity: observability.SeverityLow, Category: observability.CategoryCalculation,
			Operation: "CalculateSunTimes", Component: "astronomy.sunrise", ExpectedErr: true,
		})
		return nil, ErrNoRise
	}

	bigH0 := math.Acos(cosH0) * RadToDeg
	gast0 := ephemeris.GreenwichApparentSiderealTime(float64(jd0))

	m0 := normalizedFraction((samples[1].ra - loc.Longitude - gast0) / 360.0)
	mRise := normalizedFraction(m0 - bigH0/360.0)
	mSet := normalizedFraction(m0 + bigH0/360.0)

	riseFraction, riseErr := refineCrossing(loc, samples, gast0, h0, mRise)
	setFraction, setErr := refineCrossing(loc, samples, gast0, h0, mSet)
	if riseErr != nil {
		span.RecordError(riseErr)
		return nil, riseErr
	}
	if setErr != nil {
		span.RecordError(setErr)
		return nil, setErr
	}

	// Midnight-UT wrap-around: a converged fraction near the far edge of
	// the day actually belongs to the adjacent UT day's solution.
	if riseFraction > 0.75 {
		riseFraction -= 1
	}
	if setFraction < 0.25 {
		setFraction += 1
	}

	sunrise := ephemeris.JulianDayToTime(ephemeris.JulianDay(float64(jd0) + riseFraction))
	sunset := ephemeris.JulianDayToTime(ephemeris.JulianDay(float64(jd0) + setFraction))

	span.SetAttributes(
		attribute.String("sunrise_utc", sunrise.Format(time.RFC3339)),
		attribute.String("sunset_utc", sunset.Format(time.RFC3339)),
	)

	return &SunTimes{Sunrise: sunrise, Sunset: sunset}, nil
}

// horizonAltitude returns the target geometric altitude (degrees, negative
// below the true horizon) at which the Sun's upper limb is considered to
// rise or set: standard refraction plus the solar semidiameter plus the
// dip of the horizon due to observer altitude.
func horizonAltitude(altitudeMeters float64) float64 {
	dip := 0.0
	if altitudeMeters > 0 {
		dip = 0.0353 * math.Sqrt(altitudeMeters)
	}
	return -(standardRefraction + solarSemidiameter + dip)
}

type equatorialSample struct {
	jd       float64
	ra, dec  float64
}

// sampleSolarEquatorial returns three consecutive daily right ascension /
// declination samples (jd0-1, jd0, jd0+1), used for the three-point
// interpolation during refinement.
func sampleSolarEquatorial(ctx context.Context, manager *ephemeris.Manager, jd0 ephemeris.JulianDay) ([3]equatorialSample, error) {
	var samples [3]equatorialSample
	for i, offset := range []float64{-1, 0, 1} {
		jd := ephemeris.JulianDay(float64(jd0) + offset)
		pos, err := manager.GetSunPosition(ctx, jd)
		if err != nil {
			return samples, err
		}
		samples[i] = equatorialSample{jd: float64(jd), ra: pos.RightAscension, dec: pos.Declination}
	}
	return samples, nil
}

// refineCrossing applies up to three Newton-style corrections (Meeus eq.
// 15.1-15.4) to the initial fractional-day estimate m, interpolating the
// Sun's right ascension and declination between the three daily samples.
func refineCrossing(loc Location, samples [3]equatorialSample, gast0, h0, m float64) (float64, error) {
	latRad := loc.Latitude * DegToRad

	for iter := 0; iter < 3; iter++ {
		theta := normalizeDeg(gast0 + 360.985647*m)
		ra, dec := interpolateEquatorial(samples, m)

		localHourAngle := normalizeSigned(theta + loc.Longitude - ra)
		decRad := dec * DegToRad
		hRad := math.Asin(math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(localHourAngle*DegToRad))
		altitude := hRad * RadToDeg

		denom := 360.0 * math.Cos(decRad) * math.Cos(latRad) * math.Sin(localHourAngle*DegToRad)
		if denom == 0 {
			break
		}
		deltaM := (altitude - h0) / denom
		m += deltaM
		if math.Abs(deltaM) < 1e-6 {
			break
		}
	}
	return m, nil
}

// interpolateEquatorial performs the three-point quadratic interpolation
// Meeus prescribes (section 3.3) for RA/Dec at fractional day n, using the
// jd0-1/jd0/jd0+1 samples as the three nodes (n measured from the middle
// node, in units of one day).
func interpolateEquatorial(samples [3]equatorialSample, m float64) (ra, dec float64) {
	n := m // middle sample is at n=0, step of 1 day between samples

	raVals := unwrapDeg3(samples[0].ra, samples[1].ra, samples[2].ra)
	decVals := [3]float64{samples[0].dec, samples[1].dec, samples[2].dec}

	ra = quadraticInterp(raVals, n)
	dec = quadraticInterp(decVals, n)
	return normalizeDeg(ra), dec
}

func unwrapDeg3(a, b, c float64) [3]float64 {
	for a-b > 180 {
		a -= 360
	}
	for a-b < -180 {
		a += 360
	}
	for c-b > 180 {
		c -= 360
	}
	for c-b < -180 {
		c += 360
	}
	return [3]float64{a, b, c}
}

func quadraticInterp(y [3]float64, n float64) float64 {
	a := y[1] - y[0]
	b := y[2] - y[1]
	c := b - a
	return y[1] + n/2*(a+b+n*c)
}

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func normalizeSigned(deg float64) float64 {
	deg = normalizeDeg(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

func normalizedFraction(m float64) float64 {
	m = math.Mod(m, 1)
	if m < 0 {
		m++
	}
	return m
}

// GetSunriseTime returns just the sunrise time (UTC) for a location and date.
func GetSunriseTime(loc Location, date time.Time) (time.Time, error) {
	sunTimes, err := CalculateSunTimes(loc, date)
	if err != nil {
		return time.Time{}, err
	}
	return sunTimes.Sunrise, nil
}

// GetSunsetTime returns just the sunset time (UTC) for a location and date.
func GetSunsetTime(loc Location, date time.Time) (time.Time, error) {
	sunTimes, err := CalculateSunTimes(loc, date)
	if err != nil {
		return time.Time{}, err
	}
	return sunTimes.Sunset, nil
}

// LocalSunTimes converts a SunTimes pair from UTC to the location's civil
// UTCOffset, applying the midnight-wraparound rule: if the converted
// sunrise falls on the previous or next calendar day relative to the
// requested civil date, the date component is normalized back onto the
// requested day while keeping the clock time, matching how panchangam
// almanacs always quote sunrise against the civil day it belongs to.
func LocalSunTimes(loc Location, civilDate time.Time, times *SunTimes) *SunTimes {
	offset := time.Duration(loc.UTCOffset * float64(time.Hour))
	localLoc := time.FixedZone("local", int(offset.Seconds()))

	rise := times.Sunrise.In(localLoc)
	set := times.Sunset.In(localLoc)

	year, month, day := civilDate.Date()
	rise = time.Date(year, month, day, rise.Hour(), rise.Minute(), rise.Second(), rise.Nanosecond(), localLoc)
	set = time.Date(year, month, day, set.Hour(), set.Minute(), set.Second(), set.Nanosecond(), localLoc)

	return &SunTimes{Sunrise: rise, Sunset: set}
}
