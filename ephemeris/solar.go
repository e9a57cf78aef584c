package ephemeris

import (
	"context"
	"math"
)

// solarMeanElements holds the Sun's mean longitude, mean anomaly and the
// Earth orbital eccentricity for Julian centuries T from J2000.0.
type solarMeanElements struct {
	L0, M, E float64 // degrees, degrees, dimensionless
}

func solarMeanElementsAt(t float64) solarMeanElements {
	l0 := normalizeDegrees(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := normalizeDegrees(357.52911 + 35999.05029*t - 0.0001537*t*t)
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	return solarMeanElements{L0: l0, M: m, E: e}
}

// equationOfCenter returns the Sun's equation of center C, in degrees, the
// harmonic correction that turns the mean anomaly into the true anomaly.
func equationOfCenter(t, mDeg float64) float64 {
	m := mDeg * degToRad
	return (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
}

// embPerturbation applies a reduced multi-term correction representing the
// influence of the Earth-Moon barycenter offset from the Earth's own
// center on the apparent solar longitude. The full VSOP87 treatment uses
// dozens of periodic terms referenced to the lunar arguments (D, M', F);
// this keeps the four largest.
func embPerturbation(t float64) float64 {
	a := delaunay(t)
	sum := 6.454*math.Sin(a.D*degToRad) +
		0.013*math.Sin(3*a.D*degToRad) +
		0.177*math.Sin((a.D-a.Mp)*degToRad) -
		0.424*math.Sin((a.D+a.Mp)*degToRad)
	return sum / 3600.0 // arcseconds to degrees
}

// SolarLongitudeApparent computes the Sun's apparent geocentric ecliptic
// longitude (degrees, referred to the true equinox of date) for a UT
// Julian day, following the staged pipeline: mean elements with embedded
// precession, equation of center, Earth-Moon barycenter correction,
// nutation, and a constant aberration term.
func SolarLongitudeApparent(jdUT float64) (longitude float64, meanLongitude float64, meanAnomaly float64, eqCenter float64, nutLon float64, trueObliquity float64) {
	jdTT := jdTTFromUT(jdUT)
	t := julianCentury(jdTT)

	elements := solarMeanElementsAt(t)
	c := equationOfCenter(t, elements.M)
	trueLongitude := elements.L0 + c

	trueLongitude += embPerturbation(t)

	deltaPsi, deltaEps := nutation(t)
	meanEps := meanObliquity(t)
	trueEps := meanEps + deltaEps

	apparent := trueLongitude + deltaPsi

	// Constant aberration, per the classical -20.496" correction (rather
	// than Meeus's distance-scaled -20.4898"/R form).
	apparent -= 20.496 / 3600.0

	return normalizeDegrees(apparent), elements.L0, elements.M, c, deltaPsi, trueEps
}

// SolarDistanceAU returns the Earth-Sun distance in AU for Julian
// centuries T, via the orbital radius vector formula (Meeus eq. 25.5).
func SolarDistanceAU(t float64) float64 {
	elements := solarMeanElementsAt(t)
	m := elements.M * degToRad
	nu := m + equationOfCenter(t, elements.M)*degToRad
	e := elements.E
	return 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))
}

// EquatorialFromEcliptic converts ecliptic longitude/latitude (degrees) to
// right ascension and declination (degrees), given the true obliquity.
func EquatorialFromEcliptic(lonDeg, latDeg, obliquityDeg float64) (raDeg, decDeg float64) {
	lon := lonDeg * degToRad
	lat := latDeg * degToRad
	eps := obliquityDeg * degToRad

	ra := math.Atan2(math.Sin(lon)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps), math.Cos(lon))
	dec := math.Asin(math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon))

	return normalizeDegrees(ra * radToDeg), dec * radToDeg
}

// HarmonicProvider is the primary EphemerisProvider: a truncated
// VSOP87/ELP-style harmonic series evaluated directly, with no external
// data files.
type HarmonicProvider struct{}

// NewHarmonicProvider constructs the primary ephemeris provider.
func NewHarmonicProvider() *HarmonicProvider {
	return &HarmonicProvider{}
}

func (p *HarmonicProvider) GetSunPosition(ctx context.Context, jd JulianDay) (*SolarPosition, error) {
	jdUT := float64(jd)
	lon, meanLon, meanAnom, eqc, nutLon, trueObl := SolarLongitudeApparent(jdUT)
	t := julianCentury(jdTTFromUT(jdUT))
	dist := SolarDistanceAU(t)
	ra, dec := EquatorialFromEcliptic(lon, 0, trueObl)

	return &SolarPosition{
		JulianDay:         jd,
		Longitude:         lon,
		MeanLongitude:     meanLon,
		MeanAnomaly:       meanAnom,
		EquationOfCenter:  eqc,
		RightAscension:    ra,
		Declination:       dec,
		Distance:          dist,
		NutationLongitude: nutLon,
		ObliquityTrue:     trueObl,
	}, nil
}

func (p *HarmonicProvider) GetMoonPosition(ctx context.Context, jd JulianDay) (*LunarPosition, error) {
	return lunarPositionAt(jd)
}

func (p *HarmonicProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *HarmonicProvider) GetDataRange() (startJD, endJD JulianDay) {
	// The truncated series degrades gracefully well outside this window,
	// but this is the range over which Delta T and the nutation series
	// stay well behaved.
	return JulianDay(990000.0), JulianDay(3000000.0)
}

func (p *HarmonicProvider) GetProviderName() string { return "harmonic-truncated" }
func (p *HarmonicProvider) GetVersion() string      { return "1.0" }
func (p *HarmonicProvider) Close() error             { return nil }

// QuickProvider is a low-order fallback provider, which Manager uses when
// the primary provider is nil or returns an error. It
// keeps only the mean longitude and first equation-of-center term.
type QuickProvider struct{}

// NewQuickProvider constructs the fallback ephemeris provider.
func NewQuickProvider() *QuickProvider {
	return &QuickProvider{}
}

func (p *QuickProvider) GetSunPosition(ctx context.Context, jd JulianDay) (*SolarPosition, error) {
	t := julianCentury(float64(jd))
	elements := solarMeanElementsAt(t)
	m := elements.M * degToRad
	c := (1.914602 - 0.004817*t) * math.Sin(m)
	lon := normalizeDegrees(elements.L0 + c)

	return &SolarPosition{
		JulianDay:        jd,
		Longitude:        lon,
		MeanLongitude:    elements.L0,
		MeanAnomaly:      elements.M,
		EquationOfCenter: c,
		Distance:         SolarDistanceAU(t),
	}, nil
}

func (p *QuickProvider) GetMoonPosition(ctx context.Context, jd JulianDay) (*LunarPosition, error) {
	t := julianCentury(float64(jd))
	meanLon := normalizeDegrees(218.3164477 + 481267.88123421*t)
	mp := normalizeDegrees(134.9633964 + 477198.8675055*t)
	lon := normalizeDegrees(meanLon + 6.289*math.Sin(mp*degToRad))

	return &LunarPosition{
		JulianDay:     jd,
		Longitude:     lon,
		MeanLongitude: meanLon,
		Distance:      385000.0,
	}, nil
}

func (p *QuickProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *QuickProvider) GetDataRange() (startJD, endJD JulianDay) {
	return JulianDay(0), JulianDay(5000000.0)
}

func (p *QuickProvider) GetProviderName() string { return "quick-formula" }
func (p *QuickProvider) GetVersion() string      { return "1.0" }
func (p *QuickProvider) Close() error             { return nil }

var _ EphemerisProvider = (*HarmonicProvider)(nil)
var _ EphemerisProvider = (*QuickProvider)(nil)
