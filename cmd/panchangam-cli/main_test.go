package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedavox/panchangam/solarcalendar"
)

func TestParseLocationValid(t *testing.T) {
	loc, err := parseLocation("28.6139,77.2090", 5.5)
	require.NoError(t, err)
	assert.InDelta(t, 28.6139, loc.Latitude, 1e-9)
	assert.InDelta(t, 77.2090, loc.Longitude, 1e-9)
	assert.InDelta(t, 5.5, loc.UTCOffset, 1e-9)
}

func TestParseLocationRejectsMalformedSpec(t *testing.T) {
	_, err := parseLocation("28.6139", 5.5)
	assert.Error(t, err)
}

func TestParseLocationRejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := parseLocation("999,0", 0)
	assert.Error(t, err)
}

func TestParseCalendarAcceptsAllFour(t *testing.T) {
	cases := map[string]solarcalendar.CalendarType{
		"tamil":     solarcalendar.Tamil,
		"Bengali":   solarcalendar.Bengali,
		"ODIA":      solarcalendar.Odia,
		"malayalam": solarcalendar.Malayalam,
	}
	for input, want := range cases {
		got, err := parseCalendar(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseCalendarRejectsUnknown(t *testing.T) {
	_, err := parseCalendar("assamese")
	assert.Error(t, err)
}

func TestAdhikaSuffix(t *testing.T) {
	assert.Equal(t, " (Adhika)", adhikaSuffix(true))
	assert.Equal(t, "", adhikaSuffix(false))
}
