package astronomy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllPanchangamElements(t *testing.T) {
	manager := testManager()
	tithiCalc := NewTithiCalculator(manager)

	ctx := context.Background()
	testDate := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	jd := float64(testJDForDate(testDate))

	t.Run("Tithi Calculation", func(t *testing.T) {
		tithi, err := tithiCalc.TithiAt(ctx, jd)

		assert.NoError(t, err)
		assert.NotNil(t, tithi)
		err = ValidateTithiCalculation(tithi)
		assert.NoError(t, err)

		t.Logf("Tithi: %s (#%d), Type: %s, Duration: %.2f hours",
			tithi.Name, tithi.Number, tithi.Type, tithi.Duration)
	})

	t.Run("Nakshatra Calculation", func(t *testing.T) {
		calculator := NewNakshatraCalculator(manager)
		nakshatra, err := calculator.GetNakshatraForDate(ctx, testDate)

		assert.NoError(t, err)
		assert.NotNil(t, nakshatra)
		err = ValidateNakshatraCalculation(nakshatra)
		assert.NoError(t, err)

		t.Logf("Nakshatra: %s (#%d), Pada: %d, Planet: %s",
			nakshatra.Name, nakshatra.Number, nakshatra.Pada, nakshatra.PlanetaryLord)
	})

	t.Run("Yoga Calculation", func(t *testing.T) {
		calculator := NewYogaCalculator(manager)
		yoga, err := calculator.GetYogaForDate(ctx, testDate)

		assert.NoError(t, err)
		assert.NotNil(t, yoga)
		err = ValidateYogaCalculation(yoga)
		assert.NoError(t, err)

		t.Logf("Yoga: %s (#%d), Quality: %s, Combined: %.2f degrees",
			yoga.Name, yoga.Number, yoga.Quality, yoga.CombinedValue)
	})

	t.Run("Karana Calculation", func(t *testing.T) {
		calculator := NewKaranaCalculator(manager)
		karana, err := calculator.GetKaranaForDate(ctx, testDate)

		assert.NoError(t, err)
		assert.NotNil(t, karana)
		err = ValidateKaranaCalculation(karana)
		assert.NoError(t, err)

		t.Logf("Karana: %s (#%d), Type: %s, Tithi: %d/%d, Vishti: %v",
			karana.Name, karana.Number, karana.Type, karana.TithiNumber, karana.HalfTithi, karana.IsVishti)
	})

	t.Run("Vara Calculation", func(t *testing.T) {
		varaCalculator := NewVaraCalculator()

		gregorianDay := testDate.Weekday()
		sunrise := time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)
		nextSunrise := time.Date(2024, 1, 16, 6, 31, 0, 0, time.UTC)

		vara, err := varaCalculator.GetVaraFromGregorianDay(ctx, gregorianDay, sunrise, nextSunrise, testDate)

		assert.NoError(t, err)
		assert.NotNil(t, vara)
		err = ValidateVaraCalculation(vara)
		assert.NoError(t, err)

		t.Logf("Vara: %s (#%d), Planet: %s, Hora: %d (%s), Auspicious: %v",
			vara.Name, vara.Number, vara.PlanetaryLord, vara.CurrentHora, vara.HoraPlanet, vara.IsAuspicious)
	})
}

func TestPanchangamDataIntegrity(t *testing.T) {
	t.Run("Tithi Names", func(t *testing.T) {
		assert.Equal(t, 30, len(TithiNames), "Should have exactly 30 Tithi names")
		for i := 1; i <= 30; i++ {
			assert.NotEmpty(t, TithiNames[i], "Tithi %d name should not be empty", i)
		}
	})

	t.Run("Nakshatra Data", func(t *testing.T) {
		assert.Equal(t, 27, len(NakshatraData), "Should have exactly 27 Nakshatras")
		for i := 1; i <= 27; i++ {
			data := NakshatraData[i]
			assert.NotEmpty(t, data.Name, "Nakshatra %d name should not be empty", i)
			assert.NotEmpty(t, data.Deity, "Nakshatra %d deity should not be empty", i)
			assert.NotEmpty(t, data.PlanetaryLord, "Nakshatra %d planetary lord should not be empty", i)
		}
	})

	t.Run("Yoga Data", func(t *testing.T) {
		assert.Equal(t, 27, len(YogaData), "Should have exactly 27 Yogas")
		for i := 1; i <= 27; i++ {
			data := YogaData[i]
			assert.NotEmpty(t, data.Name, "Yoga %d name should not be empty", i)
			assert.NotEmpty(t, data.Description, "Yoga %d description should not be empty", i)
		}
	})

	t.Run("Karana Data", func(t *testing.T) {
		assert.Equal(t, 11, len(KaranaData), "Should have exactly 11 Karanas")
		for i := 1; i <= 11; i++ {
			data := KaranaData[i]
			assert.NotEmpty(t, data.Name, "Karana %d name should not be empty", i)
			assert.NotEmpty(t, data.Description, "Karana %d description should not be empty", i)
		}
		assert.True(t, KaranaData[8].IsVishti, "Karana 8 should be Vishti")
	})

	t.Run("Vara Data", func(t *testing.T) {
		assert.Equal(t, 7, len(VaraData), "Should have exactly 7 Varas")
		for i := 1; i <= 7; i++ {
			data := VaraData[i]
			assert.NotEmpty(t, data.Name, "Vara %d name should not be empty", i)
			assert.NotEmpty(t, data.PlanetaryLord, "Vara %d planetary lord should not be empty", i)
			assert.NotEmpty(t, data.GregorianDay, "Vara %d gregorian day should not be empty", i)
		}
	})
}

func BenchmarkAllPanchangamCalculations(b *testing.B) {
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
}
