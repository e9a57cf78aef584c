package solarcalendar

import (
	"context"
	"fmt"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/ephemeris"
)

// rashiTargetLongitude returns the sidereal longitude (0, 30, ..., 330) at
// which the Sun enters rashi.
func rashiTargetLongitude(rashi int) float64 {
	return float64(rashi-1) * 30.0
}

// SankrantiJD locates, by 50-iteration bisection on the Sun's sidereal
// longitude, the Julian day at which the Sun enters rashi, searching a
// window around jdEst. The low side of the window is widened by 30 days
// if the Sun has already passed the target at the initial lower bound,
// mirroring the tithi-boundary bisection's wrap-handling.
func SankrantiJD(ctx context.Context, manager *ephemeris.Manager, rashi int, jdEst float64) (float64, error) {
	target := rashiTargetLongitude(rashi)

	unwrap := func(jd float64) (float64, error) {
		lambda, err := astronomy.SiderealSunLongitude(ctx, manager, jd)
		if err != nil {
			return 0, err
		}
		for lambda < target-180 {
			lambda += 360
		}
		for lambda > target+180 {
			lambda -= 360
		}
		return lambda, nil
	}

	lo, hi := jdEst-20, jdEst+20
	flo, err := unwrap(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := unwrap(hi)
	if err != nil {
		return 0, err
	}
	flo -= target
	fhi -= target

	if flo > 0 {
		lo -= 30
		if flo, err = unwrap(lo); err != nil {
			return 0, err
		}
		flo -= target
	}

	for attempt := 0; attempt < 4 && flo*fhi > 0; attempt++ {
		hi += 10
		if fhi, err = unwrap(hi); err != nil {
			return 0, err
		}
		fhi -= target
	}
	if flo*fhi > 0 {
		return 0, fmt.Errorf("%w: sankranti for rashi %d near jd %f", astronomy.ErrBisectionUnbracketed, rashi, jdEst)
	}

	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		fm, err := unwrap(mid)
		if err != nil {
			return 0, err
		}
		fm -= target

		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi, fhi = mid, fm
		}
	}
	return (lo + hi) / 2, nil
}
