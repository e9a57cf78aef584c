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

// NakshatraInfo represents a Nakshatra with its properties
type NakshatraInfo struct {
	Number        int       `json:"number"`         // 1-27
	Name          string    `json:"name"`           // Sanskrit name
	Deity         string    `json:"deity"`          // Ruling deity
	PlanetaryLord string    `json:"planetary_lord"` // Ruling planet
	Symbol        string    `json:"symbol"`         // Traditional symbol
	Pada          int       `json:"pada"`           // Current pada (1-4)
	StartTime     time.Time `json:"start_time"`     // When this Nakshatra begins
	EndTime       time.Time `json:"end_time"`       // When this Nakshatra ends
	Duration      float64   `json:"duration"`       // Duration in hours
	MoonLongitude float64   `json:"moon_longitude"` // Moon's sidereal longitude in degrees
}

// NakshatraCalculator handles Nakshatra calculations
type NakshatraCalculator struct {
	manager  *ephemeris.Manager
	observer observability.ObserverInterface
}

// NewNakshatraCalculator creates a new NakshatraCalculator
func NewNakshatraCalculator(manager *ephemeris.Manager) *NakshatraCalculator {
	return &NakshatraCalculator{
		manager:  manager,
		observer: observability.Observer(),
	}
}

// NakshatraData contains detailed information about each Nakshatra
// Sources:
// - "Hindu Astronomy" by W.E. van Wijk (1930)
// - "Surya Siddhanta" - Ancient Sanskrit astronomical text
// - "Brihat Parashara Hora Shastra" by Sage Parashara
// - "Muhurta Chintamani" by Daivagya Ramachandra
var NakshatraData = map[int]struct {
	Name          string
	Deity         string
	PlanetaryLord string
	Symbol        string
}{
	1:  {"Ashwini", "Ashwini Kumaras", "Ketu", "Horse's Head"},
	2:  {"Bharani", "Yama", "Venus", "Yoni (Vagina)"},
	3:  {"Krittika", "Agni", "Sun", "Razor/Knife"},
	4:  {"Rohini", "Brahma", "Moon", "Cart/Chariot"},
	5:  {"Mrigashira", "Soma", "Mars", "Deer's Head"},
	6:  {"Ardra", "Rudra", "Rahu", "Teardrop/Diamond"},
	7:  {"Punarvasu", "Aditi", "Jupiter", "Bow and Quiver"},
	8:  {"Pushya", "Brihaspati", "Saturn", "Cow's Udder"},
	9:  {"Ashlesha", "Nagas", "Mercury", "Serpent"},
	10: {"Magha", "Pitrs (Ancestors)", "Ketu", "Throne"},
	11: {"Purva Phalguni", "Bhaga", "Venus", "Front Legs of Bed"},
	12: {"Uttara Phalguni", "Aryaman", "Sun", "Back Legs of Bed"},
	13: {"Hasta", "Savitar", "Moon", "Hand"},
	14: {"Chitra", "Tvashtar", "Mars", "Bright Jewel"},
	15: {"Swati", "Vayu", "Rahu", "Young Shoot of Plant"},
	16: {"Vishakha", "Indra-Agni", "Jupiter", "Triumphal Arch"},
	17: {"Anuradha", "Mitra", "Saturn", "Lotus"},
	18: {"Jyeshtha", "Indra", "Mercury", "Circular Amulet"},
	19: {"Mula", "Nirriti", "Ketu", "Bunch of Roots"},
	20: {"Purva Ashadha", "Apas", "Venus", "Elephant Tusk"},
	21: {"Uttara Ashadha", "Vishve Devas", "Sun", "Elephant Tusk"},
	22: {"Shravana", "Vishnu", "Moon", "Ear/Three Footprints"},
	23: {"Dhanishta", "Vasus", "Mars", "Drum"},
	24: {"Shatabhisha", "Varuna", "Rahu", "Empty Circle"},
	25: {"Purva Bhadrapada", "Aja Ekapada", "Jupiter", "Front Legs of Funeral Cot"},
	26: {"Uttara Bhadrapada", "Ahir Budhnya", "Saturn", "Back Legs of Funeral Cot"},
	27: {"Revati", "Pushan", "Mercury", "Fish/Pair of Fish"},
}

const nakshatraSpan = 360.0 / 27.0 // 13deg20' = 13.333... degrees

// siderealMoonLongitude returns the Moon's ecliptic longitude corrected for
// the Lahiri ayanamsa, normalized to [0, 360).
func siderealMoonLongitude(ctx context.Context, manager *ephemeris.Manager, jdUT float64) (float64, error) {
	moon, err := manager.GetMoonPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("failed to get moon position: %w", err)
	}
	ayanamsa := ephemeris.LahiriAyanamsa(jdUT)
	return ephemeris.ToSidereal(moon.Longitude, ayanamsa), nil
}

// GetNakshatraForDate calculates the Nakshatra for a given date
func (nc *NakshatraCalculator) GetNakshatraForDate(ctx context.Context, date time.Time) (*NakshatraInfo, error) {
	ctx, span := nc.observer.CreateSpan(ctx, "NakshatraCalculator.GetNakshatraForDate")
	defer span.End()

	span.SetAttributes(
		attribute.String("date", date.Format("2006-01-02")),
		attribute.String("timezone", date.Location().String()),
	)

	noonDate := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	jd := ephemeris.TimeToJulianDay(noonDate)

	span.SetAttributes(attribute.Float64("julian_day", float64(jd)))

	moonLong, err := siderealMoonLongitude(ctx, nc.manager, float64(jd))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	nakshatra, err := nc.calculateNakshatraFromLongitude(ctx, float64(jd), moonLong)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("nakshatra_number", nakshatra.Number),
		attribute.String("nakshatra_name", nakshatra.Name),
		attribute.String("deity", nakshatra.Deity),
		attribute.String("planetary_lord", nakshatra.PlanetaryLord),
		attribute.Int("pada", nakshatra.Pada),
		attribute.Float64("moon_longitude", nakshatra.MoonLongitude),
	)

	span.AddEvent("Nakshatra calculated", trace.WithAttributes(
		attribute.Int("nakshatra_number", nakshatra.Number),
		attribute.String("nakshatra_name", nakshatra.Name),
		attribute.Int("pada", nakshatra.Pada),
	))

	return nakshatra, nil
}

// calculateNakshatraFromLongitude builds a NakshatraInfo from a known
// sidereal Moon longitude at jdUT, locating the Nakshatra's exact entry and
// exit instants by bisection on the Moon's own sidereal longitude.
func (nc *NakshatraCalculator) calculateNakshatraFromLongitude(ctx context.Context, jdUT, moonLong float64) (*NakshatraInfo, error) {
	ctx, span := nc.observer.CreateSpan(ctx, "NakshatraCalculator.calculateNakshatraFromLongitude")
	defer span.End()

	normalizedLong := normalizeDeg(moonLong)
	span.SetAttributes(attribute.Float64("normalized_moon_longitude", normalizedLong))

	nakshatraFloat := normalizedLong / nakshatraSpan
	nakshatraNumber := int(nakshatraFloat) + 1
	if nakshatraNumber > 27 {
		nakshatraNumber = 27
	}
	if nakshatraNumber < 1 {
		nakshatraNumber = 1
	}

	padaSpan := nakshatraSpan / 4.0
	positionInNakshatra := normalizedLong - (float64(nakshatraNumber-1) * nakshatraSpan)
	pada := int(positionInNakshatra/padaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	if pada < 1 {
		pada = 1
	}

	span.SetAttributes(
		attribute.Float64("nakshatra_span", nakshatraSpan),
		attribute.Int("nakshatra_number", nakshatraNumber),
		attribute.Float64("position_in_nakshatra", positionInNakshatra),
		attribute.Int("pada", pada),
	)

	nakshatraDetails := NakshatraData[nakshatraNumber]

	startBoundary := float64(nakshatraNumber-1) * nakshatraSpan
	endBoundary := math.Mod(float64(nakshatraNumber)*nakshatraSpan, 360)

	startJD, err := bisectMoonLongitudeCrossing(ctx, nc.manager, jdUT, startBoundary)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	endJD, err := bisectMoonLongitudeCrossing(ctx, nc.manager, jdUT, endBoundary)
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

	nakshatra := &NakshatraInfo{
		Number:        nakshatraNumber,
		Name:          nakshatraDetails.Name,
		Deity:         nakshatraDetails.Deity,
		PlanetaryLord: nakshatraDetails.PlanetaryLord,
		Symbol:        nakshatraDetails.Symbol,
		Pada:          pada,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      duration,
		MoonLongitude: normalizedLong,
	}

	span.AddEvent("Nakshatra calculation completed", trace.WithAttributes(
		attribute.Int("nakshatra_number", nakshatraNumber),
		attribute.String("nakshatra_name", nakshatraDetails.Name),
		attribute.Int("pada", pada),
		attribute.Float64("duration_hours", duration),
	))

	return nakshatra, nil
}

// bisectMoonLongitudeCrossing locates, by 50-iteration bisection, the
// Julian day at which the Moon's sidereal longitude crosses targetDeg,
// searching a window around approxJD. The longitude is unwrapped locally
// around targetDeg so the search behaves correctly across the 360/0 seam.
func bisectMoonLongitudeCrossing(ctx context.Context, manager *ephemeris.Manager, approxJD, targetDeg float64) (float64, error) {
	unwrap := func(jd float64) (float64, error) {
		d, err := siderealMoonLongitude(ctx, manager, jd)
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
		return 0, fmt.Errorf("%w: nakshatra boundary near jd %f", ErrBisectionUnbracketed, approxJD)
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

// GetNakshatraFromLongitude is a convenience function for direct longitude input
func (nc *NakshatraCalculator) GetNakshatraFromLongitude(ctx context.Context, jdUT, moonLong float64) (*NakshatraInfo, error) {
	ctx, span := nc.observer.CreateSpan(ctx, "NakshatraCalculator.GetNakshatraFromLongitude")
	defer span.End()

	span.SetAttributes(attribute.Float64("moon_longitude", moonLong))

	return nc.calculateNakshatraFromLongitude(ctx, jdUT, moonLong)
}

// GetPadaDescription returns a description of the Pada
func GetPadaDescription(nakshatraNumber, pada int) string {
	switch pada {
	case 1:
		return "First pada - represents new beginnings and initiation"
	case 2:
		return "Second pada - represents growth and development"
	case 3:
		return "Third pada - represents maturity and stability"
	case 4:
		return "Fourth pada - represents completion and transformation"
	default:
		return "Unknown pada"
	}
}

// ValidateNakshatraCalculation validates a Nakshatra calculation result
func ValidateNakshatraCalculation(nakshatra *NakshatraInfo) error {
	if nakshatra == nil {
		return fmt.Errorf("nakshatra cannot be nil")
	}

	if nakshatra.Number < 1 || nakshatra.Number > 27 {
		return fmt.Errorf("invalid nakshatra number: %d, must be between 1 and 27", nakshatra.Number)
	}

	if nakshatra.Pada < 1 || nakshatra.Pada > 4 {
		return fmt.Errorf("invalid pada: %d, must be between 1 and 4", nakshatra.Pada)
	}

	if nakshatra.MoonLongitude < 0 || nakshatra.MoonLongitude >= 360 {
		return fmt.Errorf("invalid moon longitude: %f, must be between 0 and 360 degrees", nakshatra.MoonLongitude)
	}

	if nakshatra.Duration <= 0 || nakshatra.Duration > 48 {
		return fmt.Errorf("invalid nakshatra duration: %f hours, must be positive and reasonable", nakshatra.Duration)
	}

	if nakshatra.EndTime.Before(nakshatra.StartTime) {
		return fmt.Errorf("nakshatra end time cannot be before start time")
	}

	if nakshatra.Name == "" {
		return fmt.Errorf("nakshatra name cannot be empty")
	}

	return nil
}
