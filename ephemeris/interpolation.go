package ephemeris

import (
	"fmt"
	"math"
)

// LongitudePoint is a single (Julian day, ecliptic longitude) sample used
// by the Lagrange interpolators below.
type LongitudePoint struct {
	JD        float64
	Longitude float64 // degrees, already unwrapped relative to its neighbors
}

// unwrapLongitudes rewrites a longitude sequence so that no consecutive
// pair differs by more than 180 degrees, adding or subtracting full turns
// as needed. This lets ordinary polynomial interpolation operate on what
// is otherwise a wrapping quantity.
func unwrapLongitudes(points []LongitudePoint) []LongitudePoint {
	out := make([]LongitudePoint, len(points))
	copy(out, points)
	for i := 1; i < len(out); i++ {
		for out[i].Longitude-out[i-1].Longitude > 180 {
			out[i].Longitude -= 360
		}
		for out[i].Longitude-out[i-1].Longitude < -180 {
			out[i].Longitude += 360
		}
	}
	return out
}

// LagrangeLongitude evaluates the Lagrange interpolating polynomial
// through points, giving the longitude at jd. Used to interpolate a
// smooth longitude curve (e.g. Sun or Moon) between directly-computed
// samples a day or so apart.
func LagrangeLongitude(points []LongitudePoint, jd float64) (float64, error) {
	n := len(points)
	if n < 2 {
		return 0, fmt.Errorf("need at least 2 points for lagrange interpolation")
	}
	points = unwrapLongitudes(points)

	var result float64
	for j := 0; j < n; j++ {
		term := points[j].Longitude
		for m := 0; m < n; m++ {
			if m == j {
				continue
			}
			term *= (jd - points[m].JD) / (points[j].JD - points[m].JD)
		}
		result += term
	}
	return normalizeDegrees(result), nil
}

// InverseLagrangeCrossing locates the Julian day at which the longitude
// curve through points crosses targetLongitude, by swapping the roles of
// the independent and dependent variables in the Lagrange formula: the
// samples are treated as (longitude, jd) pairs and evaluated at
// longitude = targetLongitude. This is the standard technique for
// localizing a new moon or a sankranti once a small bracket of daily
// samples is known, and converges well provided the longitude is
// monotonic (strictly increasing) across the sampled points, which holds
// for Sun and Moon over the few-day windows this is used for.
//
// points should be a run of (typically 17) daily or sub-daily samples
// straddling the crossing, sorted by JD ascending.
func InverseLagrangeCrossing(points []LongitudePoint, targetLongitude float64) (float64, error) {
	n := len(points)
	if n < 2 {
		return 0, fmt.Errorf("need at least 2 points for inverse lagrange interpolation")
	}
	unwrapped := unwrapLongitudes(points)

	// Unwrap the target relative to the sample range so it sits between
	// consecutive unwrapped longitudes rather than at the raw mod-360 value.
	target := targetLongitude
	for target < unwrapped[0].Longitude-180 {
		target += 360
	}
	for target > unwrapped[n-1].Longitude+180 {
		target -= 360
	}

	var result float64
	for j := 0; j < n; j++ {
		term := unwrapped[j].JD
		for m := 0; m < n; m++ {
			if m == j {
				continue
			}
			denom := unwrapped[j].Longitude - unwrapped[m].Longitude
			if denom == 0 {
				continue
			}
			term *= (target - unwrapped[m].Longitude) / denom
		}
		result += term
	}
	return result, nil
}

// SampleLongitudes builds a run of (n) daily LongitudePoint samples of fn
// centered on jd, for use with LagrangeLongitude/InverseLagrangeCrossing.
func SampleLongitudes(fn func(jd float64) float64, jd float64, n int) []LongitudePoint {
	offset := float64(n-1) / 2.0
	start := jd - offset
	points := make([]LongitudePoint, n)
	for i := 0; i < n; i++ {
		x := start + float64(i)
		points[i] = LongitudePoint{JD: x, Longitude: fn(x)}
	}
	return points
}

// normalizeAngle normalizes an angle to the range [0, 360).
func normalizeAngle(angle float64) float64 {
	result := math.Mod(angle, 360.0)
	if result < 0 {
		result += 360.0
	}
	return result
}
