package ephemeris

import "math"

// lahiriEpochJD is the Julian day of 1956-03-21 00:00 UT, the reference
// epoch t0 of the Lahiri (Chitrapaksha) ayanamsa; LahiriAyanamsa fixes the
// ayanamsa at this epoch to 23.245524743 degrees.
const lahiriEpochJD = 2435553.5

// precessionAngles returns the IAU 1976 equatorial precession angles
// zeta, z and theta (degrees) for precessing from epoch T1 to epoch T2,
// both given in Julian centuries from J2000.0.
func precessionAngles(t1, t2 float64) (zeta, z, theta float64) {
	dt := t2 - t1
	t1t1 := t1 * t1

	zetaArcsec := (2306.2181+1.39656*t1-0.000139*t1t1)*dt +
		(0.30188-0.000344*t1)*dt*dt + 0.017998*dt*dt*dt
	zArcsec := (2306.2181+1.39656*t1-0.000139*t1t1)*dt +
		(1.09468+0.000066*t1)*dt*dt + 0.018203*dt*dt*dt
	thetaArcsec := (2004.3109-0.85330*t1-0.000217*t1t1)*dt -
		(0.42665+0.000217*t1)*dt*dt - 0.041833*dt*dt*dt

	return zetaArcsec / 3600.0, zArcsec / 3600.0, thetaArcsec / 3600.0
}

// precessEquatorial rotates an equatorial direction (RA/Dec, degrees) from
// epoch T1 to epoch T2 using the IAU 1976 three-rotation precession
// matrix built from zeta, z and theta.
func precessEquatorial(raDeg, decDeg, t1, t2 float64) (raOut, decOut float64) {
	zeta, z, theta := precessionAngles(t1, t2)

	ra := raDeg * degToRad
	dec := decDeg * degToRad
	z0 := zeta * degToRad
	zz := z * degToRad
	th := theta * degToRad

	a := math.Cos(dec) * math.Sin(ra+z0)
	b := math.Cos(th)*math.Cos(dec)*math.Cos(ra+z0) - math.Sin(th)*math.Sin(dec)
	c := math.Sin(th)*math.Cos(dec)*math.Cos(ra+z0) + math.Cos(th)*math.Sin(dec)

	raOut = normalizeDegrees((math.Atan2(a, b) + zz) * radToDeg)
	decOut = math.Asin(c) * radToDeg
	return raOut, decOut
}

// equatorialToEclipticLongitude converts an equatorial direction (RA/Dec,
// degrees) to ecliptic longitude (degrees) given the obliquity of the
// ecliptic epsDeg (degrees) for the same epoch.
func equatorialToEclipticLongitude(raDeg, decDeg, epsDeg float64) float64 {
	ra := raDeg * degToRad
	dec := decDeg * degToRad
	eps := epsDeg * degToRad

	y := math.Sin(dec)*math.Sin(eps) + math.Cos(dec)*math.Sin(ra)*math.Cos(eps)
	x := math.Cos(dec) * math.Cos(ra)
	return normalizeDegrees(math.Atan2(y, x) * radToDeg)
}

// LahiriAyanamsa returns the Lahiri ayanamsa (degrees): the angular offset
// between the tropical and sidereal zodiacs for a UT Julian day, per
// spec.md's 3-D equatorial precession algorithm. The target epoch's vernal
// point is precessed target → J2000 → the 1956-03-21 reference epoch t0,
// rotated into the ecliptic frame of t0, and its polar longitude combined
// with the fixed 23.245524743° reference-epoch offset.
func LahiriAyanamsa(jdUT float64) float64 {
	jdTT := jdTTFromUT(jdUT)
	tTarget := julianCentury(jdTT)
	tJ2000 := 0.0
	tRef := julianCentury(lahiriEpochJD)

	raJ2000, decJ2000 := precessEquatorial(0, 0, tTarget, tJ2000)
	raRef, decRef := precessEquatorial(raJ2000, decJ2000, tJ2000, tRef)

	eps0 := meanObliquity(tRef)
	lambda := equatorialToEclipticLongitude(raRef, decRef, eps0)
	if lambda > 180 {
		lambda -= 360
	}

	return normalizeDegrees(-lambda + 23.245524743)
}

// ToSidereal subtracts the ayanamsa from a tropical longitude, wrapping
// into [0, 360).
func ToSidereal(tropicalLongitude, ayanamsa float64) float64 {
	return normalizeDegrees(tropicalLongitude - ayanamsa)
}
