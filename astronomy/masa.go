package astronomy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MasaInfo represents a lunar month (Masa) with its associated era years.
type MasaInfo struct {
	Number      int       `json:"number"`       // 1-12, Chaitra=1
	Name        string    `json:"name"`         // Sanskrit month name
	IsAdhika    bool      `json:"is_adhika"`    // intercalary month: the Sun did not change sign between the bracketing new moons
	NewMoonJD   float64   `json:"new_moon_jd"`  // new moon preceding/starting this masa
	SakaYear    int       `json:"saka_year"`    // Shalivahana Saka year
	VikramYear  int       `json:"vikram_year"`  // Vikram Samvat year
	PrevRashi   int       `json:"prev_rashi"`   // sidereal solar rashi at the preceding new moon
	NextRashi   int       `json:"next_rashi"`   // sidereal solar rashi at the following new moon
}

// MasaNames maps Masa numbers (1-12) to their standard Sanskrit names.
var MasaNames = map[int]string{
	1: "Chaitra", 2: "Vaishakha", 3: "Jyeshtha", 4: "Ashadha",
	5: "Shravana", 6: "Bhadrapada", 7: "Ashwin", 8: "Kartik",
	9: "Margashirsha", 10: "Pausha", 11: "Magha", 12: "Phalguna",
}

// MasaCalculator handles lunar-month resolution via new-moon localization.
type MasaCalculator struct {
	manager  *ephemeris.Manager
	observer observability.ObserverInterface
}

// NewMasaCalculator creates a new MasaCalculator.
func NewMasaCalculator(manager *ephemeris.Manager) *MasaCalculator {
	return &MasaCalculator{manager: manager, observer: observability.Observer()}
}

// siderealSunLongitude returns the Sun's ecliptic longitude corrected for
// the Lahiri ayanamsa, normalized to [0, 360).
func siderealSunLongitude(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (float64, error) {
	sun, err := manager.GetSunPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("failed to get sun position: %w", err)
	}
	ayanamsa := ephemeris.LahiriAyanamsa(jdUT)
	return ephemeris.ToSidereal(sun.Longitude, ayanamsa), nil
}

// SiderealSunLongitude exposes the Sun's Lahiri-sidereal ecliptic longitude
// for callers outside this package, such as the solar-calendar engine's
// sankranti bisection.
func SiderealSunLongitude(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (float64, error) {
	return siderealSunLongitude(ctx, manager, jdUT)
}

// SolarRashi returns the sidereal solar zodiac sign (1-12, Mesha=1) in
// effect at jdUT.
func SolarRashi(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (int, error) {
	lambda, err := siderealSunLongitude(ctx, manager, jdUT)
	if err != nil {
		return 0, err
	}
	rashi := int(math.Ceil(lambda / 30.0))
	if rashi == 0 {
		rashi = 12
	}
	if rashi > 12 {
		rashi = 12
	}
	return rashi, nil
}

// newMoonPhaseSamples builds the 17 phase samples, a quarter day apart,
// that the inverse Lagrange new-moon localization interpolates over:
// x_i = -2 + 0.25*i around start, monotonized across the 360-to-0 seam.
func newMoonPhaseSamples(ctx context.Context, manager *ephemeris.Manager, start float64) ([]ephemeris.LongitudePoint, error) {
	points := make([]ephemeris.LongitudePoint, 17)
	for i := 0; i < 17; i++ {
		x := start - 2 + 0.25*float64(i)
		phase, err := MoonSunElongation(ctx, manager, x)
		if err != nil {
			return nil, err
		}
		if i > 0 && phase < points[i-1].Longitude-180 {
			phase += 360
		}
		points[i] = ephemeris.LongitudePoint{JD: x, Longitude: phase}
	}
	return points, nil
}

// NewMoonBefore locates, by 17-point inverse Lagrange interpolation, the
// most recent new moon (phase == 360, equivalently 0, after unwrapping)
// at or before jd, using tithiHint (the tithi number at jd) to seed the
// search window.
func NewMoonBefore(ctx context.Context, manager *ephemeris.Manager, jd float64, tithiHint int) (float64, error) {
	start := jd - float64(tithiHint)
	points, err := newMoonPhaseSamples(ctx, manager, start)
	if err != nil {
		return 0, err
	}
	return ephemeris.InverseLagrangeCrossing(points, 360.0)
}

// NewMoonAfter locates, by the same technique, the next new moon at or
// after jd.
func NewMoonAfter(ctx context.Context, manager *ephemeris.Manager, jd float64, tithiHint int) (float64, error) {
	start := jd + float64(30-tithiHint)
	points, err := newMoonPhaseSamples(ctx, manager, start)
	if err != nil {
		return 0, err
	}
	return ephemeris.InverseLagrangeCrossing(points, 360.0)
}

// GetMasaForDate resolves the Masa in effect at sunrise of date at loc,
// bracketing the tithi-at-sunrise with the preceding and following new
// moons and deriving Saka/Vikram years via the Kali Ahargana.
func (mc *MasaCalculator) GetMasaForDate(ctx context.Context, loc Location, date time.Time) (*MasaInfo, error) {
	ctx, span := mc.observer.CreateSpan(ctx, "MasaCalculator.GetMasaForDate")
	defer span.End()

	span.SetAttributes(attribute.String("date", date.Format("2006-01-02")))

	tithiCalc := NewTithiCalculator(mc.manager)
	tithi, err := tithiCalc.TithiAtSunrise(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get tithi at sunrise for masa calculation: %w", err)
	}

	sunTimes, err := CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	jdRise := float64(ephemeris.TimeToJulianDay(sunTimes.Sunrise))

	nmBefore, err := NewMoonBefore(ctx, mc.manager, jdRise, tithi.Number)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate preceding new moon: %w", err)
	}
	nmAfter, err := NewMoonAfter(ctx, mc.manager, jdRise, tithi.Number)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to locate following new moon: %w", err)
	}

	rashiPrev, err := SolarRashi(ctx, mc.manager, nmBefore)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	rashiNext, err := SolarRashi(ctx, mc.manager, nmAfter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	masaNumber := (rashiPrev % 12) + 1
	isAdhika := rashiPrev == rashiNext

	saka, vikram := sakaVikramYear(jdRise, masaNumber)

	masa := &MasaInfo{
		Number:     masaNumber,
		Name:       MasaNames[masaNumber],
		IsAdhika:   isAdhika,
		NewMoonJD:  nmBefore,
		SakaYear:   saka,
		VikramYear: vikram,
		PrevRashi:  rashiPrev,
		NextRashi:  rashiNext,
	}

	span.SetAttributes(
		attribute.Int("masa_number", masa.Number),
		attribute.String("masa_name", masa.Name),
		attribute.Bool("is_adhika", masa.IsAdhika),
		attribute.Int("saka_year", masa.SakaYear),
		attribute.Int("vikram_year", masa.VikramYear),
	)
	span.AddEvent("masa calculated", trace.WithAttributes(
		attribute.String("masa_name", masa.Name),
		attribute.Bool("is_adhika", masa.IsAdhika),
	))

	return masa, nil
}

// sakaVikramYear derives the Saka and Vikram Samvat years in effect for a
// masa via the Kali Ahargana epoch (JD 588465.5, the traditional start of
// the Kali Yuga).
func sakaVikramYear(jd float64, masaNumber int) (saka, vikram int) {
	const kaliEpochJD = 588465.5
	const tropicalYearDays = 365.25636

	ahar := jd - kaliEpochJD
	kali := int(math.Floor((ahar + float64(4-masaNumber)*30) / tropicalYearDays))
	saka = kali - 3179
	vikram = saka + 135
	return saka, vikram
}

// ValidateMasaCalculation sanity-checks a Masa calculation result.
func ValidateMasaCalculation(masa *MasaInfo) error {
	if masa == nil {
		return fmt.Errorf("masa cannot be nil")
	}
	if masa.Number < 1 || masa.Number > 12 {
		return fmt.Errorf("invalid masa number: %d, must be between 1 and 12", masa.Number)
	}
	if masa.Name == "" {
		return fmt.Errorf("masa name cannot be empty")
	}
	if masa.PrevRashi < 1 || masa.PrevRashi > 12 {
		return fmt.Errorf("invalid preceding rashi: %d, must be between 1 and 12", masa.PrevRashi)
	}
	if masa.NextRashi < 1 || masa.NextRashi > 12 {
		return fmt.Errorf("invalid following rashi: %d, must be between 1 and 12", masa.NextRashi)
	}
	if masa.SakaYear < 1 {
		return fmt.Errorf("invalid saka year: %d", masa.SakaYear)
	}
	return nil
}
