package astronomy

import (
	"context"
	"testing"
	"time"
)

func TestCalculateLunarTimes(t *testing.T) {
	loc := Location{
		Latitude:  12.9716,
		Longitude: 77.5946,
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	lunarTimes, err := CalculateLunarTimes(loc, date)
	if err != nil {
		t.Fatalf("Failed to calculate lunar times: %v", err)
	}

	if lunarTimes == nil {
		t.Fatal("Lunar times should not be nil")
	}

	if !lunarTimes.Moonrise.IsZero() {
		dayStart := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(72 * time.Hour)
		if lunarTimes.Moonrise.Before(dayStart) || lunarTimes.Moonrise.After(dayEnd) {
			t.Errorf("Moonrise time %v is outside reasonable range [%v, %v]", lunarTimes.Moonrise, dayStart, dayEnd)
		}
	}

	t.Logf("Moonrise: %s", lunarTimes.Moonrise.Format("15:04:05"))
	t.Logf("Moonset: %s", lunarTimes.Moonset.Format("15:04:05"))
	t.Logf("Is Visible: %t", lunarTimes.IsVisible)
}

func TestCalculateLunarTimesWithContext(t *testing.T) {
	ctx := context.Background()

	loc := Location{
		Latitude:  40.7128,
		Longitude: -74.0060,
	}

	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	lunarTimes, err := CalculateLunarTimesWithContext(ctx, loc, date)
	if err != nil {
		t.Fatalf("Failed to calculate lunar times with context: %v", err)
	}

	if lunarTimes == nil {
		t.Fatal("Lunar times should not be nil")
	}

	t.Logf("NYC Moonrise: %s", lunarTimes.Moonrise.Format("15:04:05"))
	t.Logf("NYC Moonset: %s", lunarTimes.Moonset.Format("15:04:05"))
	t.Logf("NYC Is Visible: %t", lunarTimes.IsVisible)
}

func TestCalculateLunarPhase(t *testing.T) {
	// Date near a full moon
	date := time.Date(2024, 1, 25, 12, 0, 0, 0, time.UTC)

	phase, err := CalculateLunarPhase(date)
	if err != nil {
		t.Fatalf("Failed to calculate lunar phase: %v", err)
	}

	if phase == nil {
		t.Fatal("Lunar phase should not be nil")
	}

	if phase.Phase < 0 || phase.Phase > 1 {
		t.Errorf("Phase %f should be between 0 and 1", phase.Phase)
	}

	if phase.Illumination < 0 || phase.Illumination > 100 {
		t.Errorf("Illumination %f should be between 0 and 100", phase.Illumination)
	}

	if phase.Age < 0 || phase.Age > synodicMonthDays {
		t.Errorf("Age %f should be between 0 and %f days", phase.Age, synodicMonthDays)
	}

	if phase.Name == "" {
		t.Error("Phase name should not be empty")
	}

	t.Logf("Phase: %f", phase.Phase)
	t.Logf("Illumination: %f%%", phase.Illumination)
	t.Logf("Name: %s", phase.Name)
	t.Logf("Age: %f days", phase.Age)
	t.Logf("Next New Moon: %s", phase.NextPhase.Format("2006-01-02 15:04:05"))
}

func TestCalculateLunarPhaseNewMoon(t *testing.T) {
	date := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)

	phase, err := CalculateLunarPhase(date)
	if err != nil {
		t.Fatalf("Failed to calculate lunar phase: %v", err)
	}

	if phase.Phase > 0.2 && phase.Phase < 0.8 {
		t.Errorf("Expected phase near 0 (new moon), got %f", phase.Phase)
	}
	if phase.Illumination > 40 {
		t.Errorf("Expected low illumination near new moon, got %f%%", phase.Illumination)
	}

	t.Logf("New Moon Phase: %f", phase.Phase)
	t.Logf("New Moon Illumination: %f%%", phase.Illumination)
	t.Logf("New Moon Name: %s", phase.Name)
}

func TestLunarPhaseNameCoversFullCycle(t *testing.T) {
	for _, phase := range []float64{0, 0.1, 0.25, 0.4, 0.5, 0.6, 0.75, 0.9} {
		if name := lunarPhaseName(phase); name == "" {
			t.Errorf("lunarPhaseName(%f) returned empty name", phase)
		}
	}
}

func TestGetMoonriseTime(t *testing.T) {
	loc := Location{
		Latitude:  51.5074,
		Longitude: -0.1278,
	}
	date := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	if _, err := GetMoonriseTime(loc, date); err != nil {
		t.Fatalf("Failed to get moonrise time: %v", err)
	}
}

func TestGetMoonsetTime(t *testing.T) {
	loc := Location{
		Latitude:  35.6762,
		Longitude: 139.6503,
	}
	date := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)

	if _, err := GetMoonsetTime(loc, date); err != nil {
		t.Fatalf("Failed to get moonset time: %v", err)
	}
}

func TestLunarTimesMultipleLocations(t *testing.T) {
	testCases := []struct {
		name string
		loc  Location
		date time.Time
	}{
		{
			name: "Mumbai, India",
			loc:  Location{Latitude: 19.0760, Longitude: 72.8777},
			date: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sydney, Australia",
			loc:  Location{Latitude: -33.8688, Longitude: 151.2093},
			date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sao Paulo, Brazil",
			loc:  Location{Latitude: -23.5505, Longitude: -46.6333},
			date: time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lunarTimes, err := CalculateLunarTimes(tc.loc, tc.date)
			if err != nil {
				t.Fatalf("Failed to calculate lunar times for %s: %v", tc.name, err)
			}
			if lunarTimes == nil {
				t.Fatalf("Lunar times should not be nil for %s", tc.name)
			}
			t.Logf("%s Moonrise: %s", tc.name, lunarTimes.Moonrise.Format("15:04:05"))
			t.Logf("%s Moonset: %s", tc.name, lunarTimes.Moonset.Format("15:04:05"))
			t.Logf("%s Is Visible: %t", tc.name, lunarTimes.IsVisible)
		})
	}
}

func TestLunarHorizonAltitudeReasonableRange(t *testing.T) {
	// Mean Earth-Moon distance; parallax should land near the textbook ~57'.
	h0 := lunarHorizonAltitude(384400)
	if h0 < -1.5 || h0 > 1.5 {
		t.Errorf("lunarHorizonAltitude(384400) = %f degrees, outside expected range", h0)
	}
}

func TestPolarRegions(t *testing.T) {
	polarLoc := Location{
		Latitude:  78.9167,
		Longitude: 11.9500,
	}
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	lunarTimes, err := CalculateLunarTimes(polarLoc, date)
	if err != nil {
		t.Fatalf("Failed to calculate lunar times for polar region: %v", err)
	}
	if lunarTimes == nil {
		t.Fatal("Lunar times should not be nil for polar region")
	}

	t.Logf("Polar Region Moonrise: %s", lunarTimes.Moonrise.Format("15:04:05"))
	t.Logf("Polar Region Moonset: %s", lunarTimes.Moonset.Format("15:04:05"))
	t.Logf("Polar Region Is Visible: %t", lunarTimes.IsVisible)
}

func BenchmarkCalculateLunarTimes(b *testing.B) {
	loc := Location{
		Latitude:  12.9716,
		Longitude: 77.5946,
	}
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CalculateLunarTimes(loc, date); err != nil {
			b.Fatalf("Benchmark failed: %v", err)
		}
	}
}

func BenchmarkCalculateLunarPhase(b *testing.B) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CalculateLunarPhase(date); err != nil {
			b.Fatalf("Benchmark failed: %v", err)
		}
	}
}
