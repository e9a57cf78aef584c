package astronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLocationRejectsBadLatitude(t *testing.T) {
	err := ValidateLocation(Location{Latitude: 91, Longitude: 0})
	assert.ErrorIs(t, err, ErrInputDomain)
}

func TestValidateLocationRejectsBadLongitude(t *testing.T) {
	err := ValidateLocation(Location{Latitude: 0, Longitude: -181})
	assert.ErrorIs(t, err, ErrInputDomain)
}

func TestValidateLocationAcceptsValidCoordinates(t *testing.T) {
	err := ValidateLocation(Location{Latitude: 28.6139, Longitude: 77.2090})
	assert.NoError(t, err)
}
