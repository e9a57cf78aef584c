package ephemeris

import "math"

// lunarArguments holds the Moon's fundamental arguments (degrees) for
// Julian centuries T from J2000.0, following the same Delaunay-style
// polynomials used throughout the ELP2000 lineage.
type lunarArguments struct {
	Lp, D, M, Mp, F float64
}

func lunarArgumentsAt(t float64) lunarArguments {
	lp := normalizeDegrees(218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841)
	d := normalizeDegrees(297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868)
	m := normalizeDegrees(357.5291092 + 35999.0502909*t - 0.0001536*t*t + t*t*t/24490000)
	mp := normalizeDegrees(134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699)
	f := normalizeDegrees(93.2720950 + 483202.0175233*t - 0.0036539*t*t - t*t*t/3526000)
	return lunarArguments{Lp: lp, D: d, M: m, Mp: mp, F: f}
}

// lunarLongitudeTerm is one row of the truncated ELP2000 longitude series:
// integer multipliers of (D, M, M', F) and a coefficient in degrees (the
// published table values, given in units of 0.000001 degree, scaled by
// 1e-6).
type lunarLongitudeTerm struct {
	nd, nm, nmp, nf int
	coeff           float64
}

// moonLongitudeSeries keeps the 24 largest-amplitude terms of the full
// 60-term ELP2000-82B longitude series (Meeus table 47.A). The dropped
// terms contribute at most a few hundredths of a degree; see the Open
// Questions discussion for why the full table was not reproduced.
var moonLongitudeSeries = []lunarLongitudeTerm{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
	{2, 0, -3, 0, 0.015327},
	{0, 0, 1, -2, -0.012528},
	{0, 0, 1, 2, 0.010980},
	{4, 0, -1, 0, 0.010675},
	{0, 0, 3, 0, 0.010034},
	{4, 0, -2, 0, 0.008548},
	{2, 1, -1, 0, -0.007888},
	{2, 1, 0, 0, -0.006766},
	{1, 0, -1, 0, -0.005163},
	{1, 1, 0, 0, 0.004987},
	{2, -1, 1, 0, 0.004036},
}

// moonLongitude returns the geometric geocentric ecliptic longitude of the
// Moon, in degrees, before nutation and light-time corrections.
func moonLongitude(t float64) float64 {
	a := lunarArgumentsAt(t)
	e := 1 - 0.002516*t - 0.0000074*t*t // Earth orbital eccentricity correction factor

	var sum float64
	for _, term := range moonLongitudeSeries {
		arg := (float64(term.nd)*a.D + float64(term.nm)*a.M + float64(term.nmp)*a.Mp + float64(term.nf)*a.F) * degToRad
		coeff := term.coeff
		// Terms with one M factor scale by e, two by e^2 (eccentricity of
		// the Earth's orbit, since lunar perturbations are driven by the
		// Sun's apparent motion).
		switch term.nm {
		case 1, -1:
			coeff *= e
		case 2, -2:
			coeff *= e * e
		}
		sum += coeff * math.Sin(arg)
	}

	a1 := normalizeDegrees(119.75 + 131.849*t)
	a2 := normalizeDegrees(53.09 + 479264.29*t)
	a3 := normalizeDegrees(313.45 + 481266.484*t)

	sum += 0.003958 * math.Sin(a1*degToRad)
	sum += 0.001962 * math.Sin((a.Lp-a.F)*degToRad)
	sum += 0.000318 * math.Sin(a2*degToRad)
	_ = a3

	return normalizeDegrees(a.Lp + sum)
}

// moonLatitudeTerm mirrors lunarLongitudeTerm for the (much shorter)
// truncated latitude series.
type moonLatitudeTerm struct {
	nd, nm, nmp, nf int
	coeff           float64
}

var moonLatitudeSeries = []moonLatitudeTerm{
	{0, 0, 0, 1, 5.128122},
	{0, 0, 1, 1, 0.280602},
	{0, 0, 1, -1, 0.277693},
	{2, 0, 0, -1, 0.173237},
	{2, 0, -1, 1, 0.055413},
	{2, 0, -1, -1, 0.046271},
	{2, 0, 0, 1, 0.032573},
	{0, 0, 2, 1, 0.017198},
	{2, 0, 1, -1, 0.009266},
	{0, 0, 2, -1, 0.008822},
}

func moonLatitude(t float64) float64 {
	a := lunarArgumentsAt(t)
	e := 1 - 0.002516*t - 0.0000074*t*t

	var sum float64
	for _, term := range moonLatitudeSeries {
		arg := (float64(term.nd)*a.D + float64(term.nm)*a.M + float64(term.nmp)*a.Mp + float64(term.nf)*a.F) * degToRad
		coeff := term.coeff
		switch term.nm {
		case 1, -1:
			coeff *= e
		case 2, -2:
			coeff *= e * e
		}
		sum += coeff * math.Sin(arg)
	}
	return sum
}

// moonDistanceKm returns an approximate Earth-Moon distance using the
// series' largest-amplitude cosine terms.
func moonDistanceKm(t float64) float64 {
	a := lunarArgumentsAt(t)
	sum := -20905.355*math.Cos(a.Mp*degToRad) -
		3699.111*math.Cos((2*a.D-a.Mp)*degToRad) -
		2955.968*math.Cos(2*a.D*degToRad)
	return 385000.56 + sum
}

// lunarPositionAt assembles the apparent Moon position (longitude corrected
// for nutation) for the given UT Julian day.
func lunarPositionAt(jd JulianDay) (*LunarPosition, error) {
	jdTT := jdTTFromUT(float64(jd))
	t := julianCentury(jdTT)

	lon := moonLongitude(t)
	lat := moonLatitude(t)
	deltaPsi, _ := nutation(t)
	apparentLon := normalizeDegrees(lon + deltaPsi)

	meanEps := meanObliquity(t)
	ra, dec := EquatorialFromEcliptic(apparentLon, lat, meanEps)

	return &LunarPosition{
		JulianDay:      jd,
		Longitude:      apparentLon,
		Latitude:       lat,
		RightAscension: ra,
		Declination:    dec,
		Distance:       moonDistanceKm(t),
		MeanLongitude:  lunarArgumentsAt(t).Lp,
	}, nil
}
