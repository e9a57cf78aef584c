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

// TithiType represents the categorization of a Tithi.
type TithiType string

const (
	TithiTypeNanda  TithiType = "Nanda"  // 1, 6, 11 (Joyful)
	TithiTypeBhadra TithiType = "Bhadra" // 2, 7, 12 (Auspicious)
	TithiTypeJaya   TithiType = "Jaya"   // 3, 8, 13 (Victorious)
	TithiTypeRikta  TithiType = "Rikta"  // 4, 9, 14 (Empty)
	TithiTypePurna  TithiType = "Purna"  // 5, 10, 15 (Full/Complete)
)

// TithiInfo represents a Tithi with its properties.
type TithiInfo struct {
	Number          int       `json:"number"` // 1-30
	Name            string    `json:"name"`
	TraditionalName string    `json:"traditional_name"`
	Type            TithiType `json:"type"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Duration        float64   `json:"duration"` // hours
	IsShukla        bool      `json:"is_shukla"`
	Paksha          string    `json:"paksha"`
	PakshaDay       int       `json:"paksha_day"` // 1-15
	MoonSunDiff     float64   `json:"moon_sun_diff"`
	IsAdhika        bool      `json:"is_adhika"` // repeated tithi across consecutive sunrises; set by the caller that compares days, not by TithiAt/TithiAtSunrise themselves
}

// TithiCalculator handles Tithi boundary localization via bisection.
type TithiCalculator struct {
	manager  *ephemeris.Manager
	observer observability.ObserverInterface
}

// NewTithiCalculator creates a new TithiCalculator.
func NewTithiCalculator(manager *ephemeris.Manager) *TithiCalculator {
	return &TithiCalculator{manager: manager, observer: observability.Observer()}
}

// TithiNames maps Tithi numbers (1-30) to their standard Sanskrit names.
var TithiNames = map[int]string{
	1: "Pratipada", 2: "Dwitiya", 3: "Tritiya", 4: "Chaturthi", 5: "Panchami",
	6: "Shashthi", 7: "Saptami", 8: "Ashtami", 9: "Navami", 10: "Dashami",
	11: "Ekadashi", 12: "Dwadashi", 13: "Trayodashi", 14: "Chaturdashi", 15: "Purnima",
	16: "Pratipada", 17: "Dwitiya", 18: "Tritiya", 19: "Chaturthi", 20: "Panchami",
	21: "Shashthi", 22: "Saptami", 23: "Ashtami", 24: "Navami", 25: "Dashami",
	26: "Ekadashi", 27: "Dwadashi", 28: "Trayodashi", 29: "Chaturdashi", 30: "Amavasya",
}

// PakshaNames maps paksha day numbers (1-15) to their traditional names.
var PakshaNames = map[int]string{
	1: "Pratipada", 2: "Dvithiya", 3: "Thuthiya", 4: "Chathurthi", 5: "Panchami",
	6: "Shashthi", 7: "Sapthami", 8: "Ashtami", 9: "Navami", 10: "Dashami",
	11: "Ekadashi", 12: "Dvadashi", 13: "Thrayodashi", 14: "Chathurdashi", 15: "Pournima",
}

// MoonSunElongation returns the Moon-minus-Sun geocentric ecliptic
// longitude difference, normalized to [0, 360). Since the ayanamsa
// subtracts identically from both bodies, this elongation is the same
// whether computed tropically or sidereally.
func MoonSunElongation(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (float64, error) {
	sun, err := manager.GetSunPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("failed to get sun position: %w", err)
	}
	moon, err := manager.GetMoonPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("failed to get moon position: %w", err)
	}
	diff := moon.Longitude - sun.Longitude
	return normalizeDeg(diff), nil
}

// bisectBoundaryCrossing locates, by 50-iteration bisection, the Julian
// day at which the Moon-Sun elongation crosses targetDeg, searching a
// window around approxJD. The elongation is unwrapped locally around
// targetDeg so the search behaves correctly across the 360/0 seam.
func bisectBoundaryCrossing(ctx context.Context, manager *ephemeris.Manager, approxJD, targetDeg float64) (float64, error) {
	unwrap := func(jd float64) (float64, error) {
		d, err := MoonSunElongation(ctx, manager, jd)
		if err != nil {
			return 0, err
		}
		for d < targetDeg-180 {
			d += 360
		}
		for d > targetDeg+180 {
			d -= 360
		}
		return d, nil
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

	// Widen the bracket if the crossing isn't inside the initial window;
	// the elongation advances roughly 12-13 degrees per day so +-1.2 days
	// should bracket any single tithi boundary, but guard against edge cases.
	for attempt := 0; attempt < 4 && flo*fhi > 0; attempt++ {
		observability.RecordRetryAttempt(ctx, "bisectBoundaryCrossing", attempt+1, 4,
			fmt.Errorf("bracket [%f, %f] does not bracket target %f", lo, hi, targetDeg))
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
		unbracketedErr := fmt.Errorf("%w: tithi boundary near jd %f", ErrBisectionUnbracketed, approxJD)
		observability.RecordError(ctx, unbracketedErr, observability.ErrorContext{
			Severity: observability.SeverityHigh, Category: observability.CategoryCalculation,
			Operation: "bisectBoundaryCrossing", Component: "astronomy.tithi",
			Additional: map[string]interface{}{"approx_jd": approxJD, "target_deg": targetDeg},
		})
		return 0, unbracketedErr
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

// TithiAt computes the exact Tithi in effect at jdUT, including the
// precise start and end boundaries found by bisection.
func (tc *TithiCalculator) TithiAt(ctx context.Context, jdUT float64) (*TithiInfo, error) {
	ctx, span := tc.observer.CreateSpan(ctx, "TithiCalculator.TithiAt")
	defer span.End()
	span.SetAttributes(attribute.Float64("julian_day", jdUT))

	diff, err := MoonSunElongation(ctx, tc.manager, jdUT)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tithiNumber := int(diff/12.0) + 1
	if tithiNumber > 30 {
		tithiNumber = 30
	}

	startBoundary := float64(tithiNumber-1) * 12.0
	endBoundary := float64(tithiNumber) * 12.0
	if tithiNumber == 30 {
		endBoundary = 360.0
	}

	startJD, err := bisectBoundaryCrossing(ctx, tc.manager, jdUT, startBoundary)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	endJD, err := bisectBoundaryCrossing(ctx, tc.manager, jdUT, math.Mod(endBoundary, 360))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if endJD <= startJD {
		endJD += 1.0 // boundary search landed on the wrong side of the seam; nudge forward
	}

	startTime := ephemeris.JulianDayToTime(ephemeris.JulianDay(startJD))
	endTime := ephemeris.JulianDayToTime(ephemeris.JulianDay(endJD))

	var paksha string
	var isShukla bool
	var pakshaDay int
	if tithiNumber <= 15 {
		isShukla = true
		paksha = "Shukla"
		pakshaDay = tithiNumber
	} else {
		isShukla = false
		paksha = "Krishna"
		pakshaDay = tithiNumber - 15
	}

	traditionalName := PakshaNames[pakshaDay]
	if pakshaDay == 15 && !isShukla {
		traditionalName = "Amavasya"
	}

	tithi := &TithiInfo{
		Number:          tithiNumber,
		Name:            TithiNames[tithiNumber],
		TraditionalName: traditionalName,
		Type:            getTithiType(pakshaDay),
		StartTime:       startTime,
		EndTime:         endTime,
		Duration:        endTime.Sub(startTime).Hours(),
		IsShukla:        isShukla,
		Paksha:          paksha,
		PakshaDay:       pakshaDay,
		MoonSunDiff:     diff,
	}

	span.SetAttributes(
		attribute.Int("tithi_number", tithi.Number),
		attribute.String("tithi_name", tithi.Name),
		attribute.String("paksha", tithi.Paksha),
		attribute.Float64("duration_hours", tithi.Duration),
	)
	span.AddEvent("tithi computed", trace.WithAttributes(
		attribute.String("tithi_name", tithi.Name),
	))

	return tithi, nil
}

// TithiForDate computes the Tithi in effect at local noon on date, the
// same noon-JD convention used by the Nakshatra and Yoga calculators when
// no sunrise/location context is available.
func (tc *TithiCalculator) TithiForDate(ctx context.Context, date time.Time) (*TithiInfo, error) {
	noonDate := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	jd := ephemeris.TimeToJulianDay(noonDate)
	return tc.TithiAt(ctx, float64(jd))
}

// TithiAtSunrise computes the Tithi prevailing at sunrise of the civil
// date at loc, which is the tithi traditionally reported in a panchangam
// for that day.
func (tc *TithiCalculator) TithiAtSunrise(ctx context.Context, loc Location, date time.Time) (*TithiInfo, error) {
	sunTimes, err := CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sunrise: %w", err)
	}
	jd := ephemeris.TimeToJulianDay(sunTimes.Sunrise)
	return tc.TithiAt(ctx, float64(jd))
}

// IsKshayaTithi reports whether the tithi that would normally fall between
// the given day's sunrise and the next never touches a sunrise at all
// (entirely contained within one civil day), the defining condition for a
// kshaya (dropped) tithi.
func (tc *TithiCalculator) IsKshayaTithi(ctx context.Context, loc Location, date time.Time) (bool, error) {
	today, err := tc.TithiAtSunrise(ctx, loc, date)
	if err != nil {
		return false, err
	}
	tomorrow, err := tc.TithiAtSunrise(ctx, loc, date.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}

	expectedNext := today.Number + 1
	if expectedNext > 30 {
		expectedNext = 1
	}
	skipped := tomorrow.Number != expectedNext && tomorrow.Number != today.Number
	return skipped, nil
}

// getTithiType returns the type/category of a paksha-relative tithi day (1-15).
func getTithiType(pakshaDay int) TithiType {
	switch pakshaDay {
	case 1, 6, 11:
		return TithiTypeNanda
	case 2, 7, 12:
		return TithiTypeBhadra
	case 3, 8, 13:
		return TithiTypeJaya
	case 4, 9, 14:
		return TithiTypeRikta
	case 5, 10, 15:
		return TithiTypePurna
	default:
		return TithiTypeNanda
	}
}

// GetTithiTypeDescription returns a human-readable description of a Tithi type.
func GetTithiTypeDescription(tithiType TithiType) string {
	switch tithiType {
	case TithiTypeNanda:
		return "Joyful, good for celebrations and new beginnings"
	case TithiTypeBhadra:
		return "Auspicious, good for all activities"
	case TithiTypeJaya:
		return "Victorious, good for achieving success"
	case TithiTypeRikta:
		return "Empty, avoid starting new ventures"
	case TithiTypePurna:
		return "Complete, excellent for completion of tasks"
	default:
		return "Unknown Tithi type"
	}
}

// ValidateTithiCalculation sanity-checks a Tithi calculation result.
func ValidateTithiCalculation(tithi *TithiInfo) error {
	if tithi == nil {
		return fmt.Errorf("tithi cannot be nil")
	}
	if tithi.Number < 1 || tithi.Number > 30 {
		return fmt.Errorf("invalid tithi number: %d, must be between 1 and 30", tithi.Number)
	}
	if tithi.PakshaDay < 1 || tithi.PakshaDay > 15 {
		return fmt.Errorf("invalid paksha day: %d, must be between 1 and 15", tithi.PakshaDay)
	}
	if tithi.Paksha != "Shukla" && tithi.Paksha != "Krishna" {
		return fmt.Errorf("invalid paksha: %s, must be Shukla or Krishna", tithi.Paksha)
	}
	if tithi.MoonSunDiff < 0 || tithi.MoonSunDiff >= 360 {
		return fmt.Errorf("invalid moon-sun difference: %f, must be between 0 and 360 degrees", tithi.MoonSunDiff)
	}
	if tithi.EndTime.Before(tithi.StartTime) {
		return fmt.Errorf("tithi end time cannot be before start time")
	}
	return nil
}
