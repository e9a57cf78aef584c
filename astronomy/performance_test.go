package astronomy

import (
	"context"
	"testing"
	"time"
)

// BenchmarkPanchangamPerformance measures end-to-end latency for computing
// all five core Panchangam elements for a single instant.
func BenchmarkPanchangamPerformance(b *testing.B) {
	manager := testManager()
	tithiCalc := NewTithiCalculator(manager)
	nakshatraCalc := NewNakshatraCalculator(manager)
	yogaCalc := NewYogaCalculator(manager)
	karanaCalc := NewKaranaCalculator(manager)
	varaCalc := NewVaraCalculator()

	ctx := context.Background()
	testDate := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	jd := float64(testJDForDate(testDate))

	b.ResetTimer()

	start := time.Now()
	for i := 0; i < b.N; i++ {
		if _, err := tithiCalc.TithiAt(ctx, jd); err != nil {
			b.Fatal(err)
		}
		if _, err := nakshatraCalc.GetNakshatraForDate(ctx, testDate); err != nil {
			b.Fatal(err)
		}
		if _, err := yogaCalc.GetYogaForDate(ctx, testDate); err != nil {
			b.Fatal(err)
		}
		if _, err := karanaCalc.GetKaranaForDate(ctx, testDate); err != nil {
			b.Fatal(err)
		}

		sunrise := time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)
		nextSunrise := time.Date(2024, 1, 16, 6, 31, 0, 0, time.UTC)
		if _, err := varaCalc.GetVaraFromGregorianDay(ctx, testDate.Weekday(), sunrise, nextSunrise, testDate); err != nil {
			b.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	b.StopTimer()

	avgTime := elapsed / time.Duration(b.N)
	b.Logf("Average time per complete Panchangam calculation: %v", avgTime)

	if avgTime > 100*time.Millisecond {
		b.Logf("WARNING: performance target not met, average %v > 100ms target", avgTime)
	} else {
		b.Logf("SUCCESS: performance target met, average %v < 100ms target", avgTime)
	}
}
