package astronomy

import (
	"errors"
	"fmt"
)

// ErrBisectionUnbracketed indicates a boundary-search bisection could not
// find a sign change in its search window even after widening — a
// programmer error (wrong target angle, or a window too narrow for the
// quantity's rate of change), never an expected runtime condition.
var ErrBisectionUnbracketed = errors.New("astronomy: bisection target not bracketed by search window")

// ErrInputDomain indicates a caller-supplied value is outside its valid
// domain (an out-of-range Gregorian date, or a Location with latitude
// outside [-90, 90] or longitude outside [-180, 180]).
var ErrInputDomain = errors.New("astronomy: input outside valid domain")

// ValidateLocation checks that loc's coordinates are physically valid,
// wrapping ErrInputDomain when they are not.
func ValidateLocation(loc Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f outside [-90, 90]", ErrInputDomain, loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f outside [-180, 180]", ErrInputDomain, loc.Longitude)
	}
	return nil
}
