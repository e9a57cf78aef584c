package ephemeris

import "math"

// GreenwichMeanSiderealTime returns GMST (degrees) for a UT Julian day,
// using the IAU 1982 cubic expansion in Julian centuries from J2000.0.
func GreenwichMeanSiderealTime(jdUT float64) float64 {
	t := (jdUT - 2451545.0) / 36525.0
	gmst := 280.46061837 + 360.98564736629*(jdUT-2451545.0) +
		0.000387933*t*t - t*t*t/38710000.0
	return normalizeDegrees(gmst)
}

// GreenwichApparentSiderealTime adds the equation of the equinoxes
// (nutation in longitude times the cosine of the true obliquity) to GMST,
// returning GAST in degrees.
func GreenwichApparentSiderealTime(jdUT float64) float64 {
	gmst := GreenwichMeanSiderealTime(jdUT)
	t := julianCentury(jdTTFromUT(jdUT))
	deltaPsi, deltaEps := nutation(t)
	trueObl := meanObliquity(t) + deltaEps
	eqEquinoxes := deltaPsi * math.Cos(trueObl*degToRad)
	return normalizeDegrees(gmst + eqEquinoxes)
}

// LocalApparentSiderealTime returns local apparent sidereal time in
// degrees, given east-positive longitude in degrees.
func LocalApparentSiderealTime(jdUT, longitudeDeg float64) float64 {
	return normalizeDegrees(GreenwichApparentSiderealTime(jdUT) + longitudeDeg)
}
