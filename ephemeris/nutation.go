package ephemeris

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// meanObliquity returns the mean obliquity of the ecliptic (IAU 1980), in
// degrees, for Julian centuries T from J2000.0.
func meanObliquity(t float64) float64 {
	// Laskar's polynomial, truncated to the arcsecond terms Meeus quotes
	// as sufficiently accurate for civil-calendar purposes.
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return 23.0 + 26.0/60.0 + seconds/3600.0
}

// delaunayArguments computes the five fundamental arguments (degrees) used
// by the truncated IAU 1980 nutation series, as functions of Julian
// centuries T from J2000.0.
type delaunayArguments struct {
	D, M, Mp, F, Omega float64
}

func delaunay(t float64) delaunayArguments {
	d := normalizeDegrees(297.85036 + 445267.111480*t - 0.0019142*t*t + t*t*t/189474)
	m := normalizeDegrees(357.52772 + 35999.050340*t - 0.0001603*t*t - t*t*t/300000)
	mp := normalizeDegrees(134.96298 + 477198.867398*t + 0.0086972*t*t + t*t*t/56250)
	f := normalizeDegrees(93.27191 + 483202.017538*t - 0.0036825*t*t + t*t*t/327270)
	omega := normalizeDegrees(125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000)
	return delaunayArguments{D: d, M: m, Mp: mp, F: f, Omega: omega}
}

// nutationTerm is one row of the IAU 1980 13-term truncated series: integer
// multipliers of (D, M, M', F, Omega), plus sine/cosine coefficients in
// units of 0.0001 arcsecond.
type nutationTerm struct {
	nd, nm, nmp, nf, nOmega int
	sinCoeff, sinCoeffT     float64
	cosCoeff, cosCoeffT     float64
}

// nutationSeries is a 13-term reduction of the full 106-term IAU 1980
// series, keeping the largest-amplitude terms (dominated by the lunar node
// Omega and the principal lunar/solar arguments). See the Open Questions
// discussion for why the series is truncated rather than complete.
var nutationSeries = []nutationTerm{
	{0, 0, 0, 0, 1, -171996, -174.2, 92025, 8.9},
	{-2, 0, 0, 2, 2, -13187, -1.6, 5736, -3.1},
	{0, 0, 0, 2, 2, -2274, -0.2, 977, -0.5},
	{0, 0, 0, 0, 2, 2062, 0.2, -895, 0.5},
	{0, 1, 0, 0, 0, 1426, -3.4, 54, -0.1},
	{0, 0, 1, 0, 0, 712, 0.1, -7, 0},
	{-2, 1, 0, 2, 2, -517, 1.2, 224, -0.6},
	{0, 0, 0, 2, 1, -386, -0.4, 200, 0},
	{0, 0, 1, 2, 2, -301, 0, 129, -0.1},
	{-2, -1, 0, 2, 2, 217, -0.5, -95, 0.3},
	{-2, 0, 1, 0, 0, -158, 0, 0, 0},
	{-2, 0, 0, 2, 1, 129, 0.1, -70, 0},
	{0, 0, -1, 2, 2, 123, 0, -53, 0},
}

// nutation returns Delta psi (nutation in longitude) and Delta epsilon
// (nutation in obliquity), both in degrees, for Julian centuries T.
func nutation(t float64) (deltaPsi, deltaEps float64) {
	a := delaunay(t)

	var sumPsi, sumEps float64
	for _, term := range nutationSeries {
		arg := float64(term.nd)*a.D + float64(term.nm)*a.M + float64(term.nmp)*a.Mp +
			float64(term.nf)*a.F + float64(term.nOmega)*a.Omega
		rad := arg * degToRad

		sumPsi += (term.sinCoeff + term.sinCoeffT*t) * math.Sin(rad)
		sumEps += (term.cosCoeff + term.cosCoeffT*t) * math.Cos(rad)
	}

	// Coefficients are in units of 0.0001 arcsecond.
	deltaPsi = sumPsi * 0.0001 / 3600
	deltaEps = sumEps * 0.0001 / 3600
	return deltaPsi, deltaEps
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// julianCentury returns T, the number of Julian centuries since J2000.0,
// for a Julian day number expressed in Terrestrial Time.
func julianCentury(jdTT float64) float64 {
	return (jdTT - 2451545.0) / 36525.0
}

// jdTTFromUT converts a UT Julian day to TT by adding the estimated Delta T.
func jdTTFromUT(jdUT float64) float64 {
	t := JulianDayToTime(JulianDay(jdUT))
	dt := DeltaT(t.Year(), int(t.Month()))
	return jdUT + dt/86400.0
}
