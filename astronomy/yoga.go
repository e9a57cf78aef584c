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

// YogaQuality represents the auspicious nature of a Yoga
type YogaQuality string

const (
	YogaQualityAuspicious   YogaQuality = "Auspicious"
	YogaQualityInauspicious YogaQuality = "Inauspicious"
	YogaQualityMixed        YogaQuality = "Mixed"
	YogaQualityNeutral      YogaQuality = "Neutral"
)

// YogaInfo represents a Yoga with its properties
type YogaInfo struct {
	Number        int         `json:"number"`         // 1-27
	Name          string      `json:"name"`           // Sanskrit name
	Quality       YogaQuality `json:"quality"`        // Auspicious nature
	Description   string      `json:"description"`    // Meaning and effects
	StartTime     time.Time   `json:"start_time"`     // When this Yoga begins
	EndTime       time.Time   `json:"end_time"`       // When this Yoga ends
	Duration      float64     `json:"duration"`       // Duration in hours
	SunLongitude  float64     `json:"sun_longitude"`  // Sun's sidereal longitude in degrees
	MoonLongitude float64     `json:"moon_longitude"` // Moon's sidereal longitude in degrees
	CombinedValue float64     `json:"combined_value"` // Sum of Sun and Moon sidereal longitudes, mod 360
}

// YogaCalculator handles Yoga calculations
type YogaCalculator struct {
	manager  *ephemeris.Manager
	observer observability.ObserverInterface
}

// NewYogaCalculator creates a new YogaCalculator
func NewYogaCalculator(manager *ephemeris.Manager) *YogaCalculator {
	return &YogaCalculator{
		manager:  manager,
		observer: observability.Observer(),
	}
}

// YogaData contains detailed information about each Yoga
// Sources:
// - "Brihat Parashara Hora Shastra" by Sage Parashara
// - "Muhurta Chintamani" by Daivagya Ramachandra
// - "Hindu Astronomy" by W.E. van Wijk (1930)
// - "Surya Siddhanta" - Ancient Sanskrit astronomical text
var YogaData = map[int]struct {
	Name        string
	Quality     YogaQuality
	Description string
}{
	1:  {"Vishkambha", YogaQualityInauspicious, "Obstructive, delays and obstacles"},
	2:  {"Priti", YogaQualityAuspicious, "Love and affection, good for relationships"},
	3:  {"Ayushman", YogaQualityAuspicious, "Longevity, health and vitality"},
	4:  {"Saubhagya", YogaQualityAuspicious, "Good fortune, prosperity and happiness"},
	5:  {"Shobhana", YogaQualityAuspicious, "Beauty, auspicious for ceremonies"},
	6:  {"Atiganda", YogaQualityInauspicious, "Great danger, avoid important work"},
	7:  {"Sukarma", YogaQualityAuspicious, "Good deeds, meritorious actions"},
	8:  {"Dhriti", YogaQualityAuspicious, "Determination, steadfastness"},
	9:  {"Shula", YogaQualityInauspicious, "Pain and suffering, inauspicious"},
	10: {"Ganda", YogaQualityInauspicious, "Danger, avoid travel and new ventures"},
	11: {"Vriddhi", YogaQualityAuspicious, "Growth and prosperity"},
	12: {"Dhruva", YogaQualityAuspicious, "Stability, permanent gains"},
	13: {"Vyaghata", YogaQualityInauspicious, "Destruction, avoid important work"},
	14: {"Harshana", YogaQualityAuspicious, "Joy and happiness"},
	15: {"Vajra", YogaQualityMixed, "Diamond-like strength, can be harsh"},
	16: {"Siddhi", YogaQualityAuspicious, "Success and achievement"},
	17: {"Vyatipata", YogaQualityInauspicious, "Great calamity, very inauspicious"},
	18: {"Variyana", YogaQualityMixed, "Choice and selection, mixed results"},
	19: {"Parigha", YogaQualityInauspicious, "Iron rod, obstacles and delays"},
	20: {"Shiva", YogaQualityAuspicious, "Auspicious, beneficial for all activities"},
	21: {"Siddha", YogaQualityAuspicious, "Accomplished, success assured"},
	22: {"Sadhya", YogaQualityAuspicious, "Achievable, goals can be accomplished"},
	23: {"Shubha", YogaQualityAuspicious, "Pure and auspicious"},
	24: {"Shukla", YogaQualityAuspicious, "Bright and pure"},
	25: {"Brahma", YogaQualityAuspicious, "Divine, highly auspicious"},
	26: {"Indra", YogaQualityAuspicious, "Royal, powerful and prosperous"},
	27: {"Vaidhriti", YogaQualityInauspicious, "Separation, avoid joint ventures"},
}

const yogaSpan = 360.0 / 27.0 // 13deg20' = 13.333... degrees

// yogaCombinedValue returns the sum of the Sun and Moon sidereal longitudes,
// normalized to [0, 360). Unlike the tithi elongation, this sum does NOT
// cancel the ayanamsa (both terms shift the same direction), so it must be
// computed from true sidereal longitudes rather than a tropical difference.
func yogaCombinedValue(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (sunSidereal, moonSidereal, combined float64, err error) {
	sun, err := manager.GetSunPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get sun position: %w", err)
	}
	moon, err := manager.GetMoonPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get moon position: %w", err)
	}
	ayanamsa := ephemeris.LahiriAyanamsa(jdUT)
	sunSidereal = ephemeris.ToSidereal(sun.Longitude, ayanamsa)
	moonSidereal = ephemeris.ToSidereal(moon.Longitude, ayanamsa)
	combined = normalizeDeg(sunSidereal + moonSidereal)
	return sunSidereal, moonSidereal, combined, nil
}

// GetYogaForDate calculates the Yoga for a given date
func (yc *YogaCalculator) GetYogaForDate(ctx context.Context, date time.Time) (*YogaInfo, error) {
	ctx, span := yc.observer.CreateSpan(ctx, "YogaCalculator.GetYogaForDate")
	defer span.End()

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.String("timezone", date.Location().String()),
	)

	noonDate := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	jd := ephemeris.TimeToJulianDay(noonDate)

	span.SetAttributes(attribute.Float64("julian_day", float64(jd)))

	yoga, err := yc.calculateYogaAt(ctx, float64(jd))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("yoga_number", yoga.Number),
		attribute.String("yoga_name", yoga.Name),
		attribute.String("yoga_quality", string(yoga.Quality)),
		attribute.Float64("combined_value", yoga.CombinedValue),
	)

	span.AddEvent("Yoga calculated", trace.WithAttributes(
		attribute.Int("yoga_number", yoga.Number),
		attribute.String("yoga_name", yoga.Name),
		attribute.String("yoga_quality", string(yoga.Quality)),
	))

	return yoga, nil
}

// calculateYogaAt calculates the Yoga in effect at jdUT, locating its exact
// start and end boundaries by bisection on the combined Sun+Moon sidereal
// longitude.
func (yc *YogaCalculator) calculateYogaAt(ctx context.Context, jdUT float64) (*YogaInfo, error) {
	ctx, span := yc.observer.CreateSpan(ctx, "YogaCalculator.calculateYogaAt")
	defer span.End()

	sunSidereal, moonSidereal, combinedValue, err := yogaCombinedValue(ctx, yc.manager, jdUT)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("sun_longitude", sunSidereal),
		attribute.Float64("moon_longitude", moonSidereal),
		attribute.Float64("combined_value", combinedValue),
	)

	yogaFloat := combinedValue / yogaSpan
	yogaNumber := int(yogaFloat) + 1
	if yogaNumber > 27 {
		yogaNumber = 27
	}
	if yogaNumber < 1 {
		yogaNumber = 1
	}

	span.SetAttributes(
		attribute.Float64("yoga_float", yogaFloat),
		attribute.Int("yoga_number", yogaNumber),
	)

	yogaDetails := YogaData[yogaNumber]

	startBoundary := float64(yogaNumber-1) * yogaSpan
	endBoundary := math.Mod(float64(yogaNumber)*yogaSpan, 360)

	startJD, err := bisectYogaBoundaryCrossing(ctx, yc.manager, jdUT, startBoundary)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	endJD, err := bisectYogaBoundaryCrossing(ctx, yc.manager, jdUT, endBoundary)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if endJD <= startJD {
		endJD += 1.0
	}

	startTime := ephemeris.JulianDayToTime(ephemeris.JulianDay(startJD))
	endTime := ephemeris.JulianDayToTime(ephemeris.JulianDay(endJD))
	duration := endTime.Sub(startTime).Hours()

	yoga := &YogaInfo{
		Number:        yogaNumber,
		Name:          yogaDetails.Name,
		Quality:       yogaDetails.Quality,
		Description:   yogaDetails.Description,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      duration,
		SunLongitude:  sunSidereal,
		MoonLongitude: moonSidereal,
		CombinedValue: combinedValue,
	}

	span.AddEvent("Yoga calculation completed", trace.WithAttributes(
		attribute.Int("yoga_number", yogaNumber),
		attribute.String("yoga_name", yogaDetails.Name),
		attribute.String("yoga_quality", string(yogaDetails.Quality)),
		attribute.Float64("duration_hours", duration),
	))

	return yoga, nil
}

// bisectYogaBoundaryCrossing locates, by 50-iteration bisection, the Julian
// day at which the combined Sun+Moon sidereal longitude crosses targetDeg.
func bisectYogaBoundaryCrossing(ctx context.Context, manager *ephemeris.Manager, approxJD, targetDeg float64) (float64, error) {
	unwrap := func(jd float64) (float64, error) {
		_, _, combined, err := yogaCombinedValue(ctx, manager, jd)
		if err != nil {
			return 0, err
		}
		for combined < targetDeg-180 {
			combined += 360
		}
		for combined > targetDeg+180 {
			combined -= 360
		}
		return combined, nil
	}

	lo, hi := approxJD-1.2, approxJD+1.2
	flo, err := unwrap(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := unwrap(hi)
	if err != nil {
		return 0, err
	}
	flo -= targetDeg
	fhi -= targetDeg

	for attempt := 0; attempt < 4 && flo*fhi > 0; attempt++ {
		lo -= 0.5
		hi += 0.5
		if flo, err = unwrap(lo); err != nil {
			return 0, err
		}
		if fhi, err = unwrap(hi); err != nil {
			return 0, err
		}
		flo -= targetDeg
		fhi -= targetDeg
	}
	if flo*fhi > 0 {
		return 0, fmt.Errorf("%w: yoga boundary near jd %f", ErrBisectionUnbracketed, approxJD)
	}

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		fm, err := unwrap(mid)
		if err != nil {
			return 0, err
		}
		fm -= targetDeg

		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi, fhi = mid, fm
		}
	}
	return (lo + hi) / 2, nil
}

// GetYogaFromLongitudes returns the Yoga in effect at the UT Julian day
// jdUT. It takes a Julian day rather than longitudes and computes the
// sidereal longitudes itself from the ephemeris.
func (yc *YogaCalculator) GetYogaFromLongitudes(ctx context.Context, jdUT float64) (*YogaInfo, error) {
	ctx, span := yc.observer.CreateSpan(ctx, "YogaCalculator.GetYogaFromLongitudes")
	defer span.End()
	return yc.calculateYogaAt(ctx, jdUT)
}

// IsAuspiciousYoga returns true if the Yoga is considered auspicious
func IsAuspiciousYoga(yoga *YogaInfo) bool {
	return yoga.Quality == YogaQualityAuspicious
}

// IsInauspiciousYoga returns true if the Yoga is considered inauspicious
func IsInauspiciousYoga(yoga *YogaInfo) bool {
	return yoga.Quality == YogaQualityInauspicious
}

// GetYogaQualityDescription returns a detailed description of the Yoga quality
func GetYogaQualityDescription(quality YogaQuality) string {
	switch quality {
	case YogaQualityAuspicious:
		return "Favorable for all activities, brings good fortune and success"
	case YogaQualityInauspicious:
		return "Unfavorable, avoid important activities and new ventures"
	case YogaQualityMixed:
		return "Mixed results, proceed with caution and careful planning"
	case YogaQualityNeutral:
		return "Neutral influence, neither particularly favorable nor unfavorable"
	default:
		return "Unknown yoga quality"
	}
}

// ValidateYogaCalculation validates a Yoga calculation result
func ValidateYogaCalculation(yoga *YogaInfo) error {
	if yoga == nil {
		return fmt.Errorf("yoga cannot be nil")
	}

	if yoga.Number < 1 || yoga.Number > 27 {
		return fmt.Errorf("invalid yoga number: %d, must be between 1 and 27", yoga.Number)
	}

	if yoga.SunLongitude < 0 || yoga.SunLongitude >= 360 {
		return fmt.Errorf("invalid sun longitude: %f, must be between 0 and 360 degrees", yoga.SunLongitude)
	}

	if yoga.MoonLongitude < 0 || yoga.MoonLongitude >= 360 {
		return fmt.Errorf("invalid moon longitude: %f, must be between 0 and 360 degrees", yoga.MoonLongitude)
	}

	if yoga.CombinedValue < 0 || yoga.CombinedValue >= 360 {
		return fmt.Errorf("invalid combined value: %f, must be between 0 and 360 degrees", yoga.CombinedValue)
	}

	if yoga.Duration <= 0 || yoga.Duration > 48 {
		return fmt.Errorf("invalid yoga duration: %f hours, must be positive and reasonable", yoga.Duration)
	}

	if yoga.EndTime.Before(yoga.StartTime) {
		return fmt.Errorf("yoga end time cannot be before start time")
	}

	if yoga.Name == "" {
		return fmt.Errorf("yoga name cannot be empty")
	}

	switch yoga.Quality {
	case YogaQualityAuspicious, YogaQualityInauspicious, YogaQualityMixed, YogaQualityNeutral:
	default:
		return fmt.Errorf("invalid yoga quality: %s", yoga.Quality)
	}

	return nil
}
