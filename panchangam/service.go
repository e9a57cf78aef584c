package panchangam

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/log"
	"github.com/vedavox/panchangam/observability"
	"github.com/vedavox/panchangam/solarcalendar"
	"go.opentelemetry.io/otel/attribute"
)

var logger = log.Logger()

// Service exposes the panchang/solar-calendar engine through spec.md
// §6.1's public API, with the ephemeris engine and cache injected by the
// caller rather than held as package-global state.
type Service struct {
	config        Config
	observer      observability.ObserverInterface
	manager       *ephemeris.Manager
	tithiCalc     *astronomy.TithiCalculator
	masaCalc      *astronomy.MasaCalculator
	nakshatraCalc *astronomy.NakshatraCalculator
	yogaCalc      *astronomy.YogaCalculator
	karanaCalc    *astronomy.KaranaCalculator
	varaCalc      *astronomy.VaraCalculator
	festivalCal   *astronomy.FestivalCalendar
	solarConv     *solarcalendar.Converter
}

// NewService creates a Service backed by manager, the caller-supplied
// ephemeris engine.
func NewService(manager *ephemeris.Manager, config Config) *Service {
	return &Service{
		config:        config,
		observer:      observability.Observer(),
		manager:       manager,
		tithiCalc:     astronomy.NewTithiCalculator(manager),
		masaCalc:      astronomy.NewMasaCalculator(manager),
		nakshatraCalc: astronomy.NewNakshatraCalculator(manager),
		yogaCalc:      astronomy.NewYogaCalculator(manager),
		karanaCalc:    astronomy.NewKaranaCalculator(manager),
		varaCalc:      astronomy.NewVaraCalculator(),
		festivalCal:   astronomy.NewFestivalCalendar(),
		solarConv:     solarcalendar.NewConverter(manager),
	}
}

// NewDefaultService wires a Service against the package's default
// harmonic-ephemeris stack, for callers that don't need their own cache
// or provider configuration.
func NewDefaultService() *Service {
	return NewService(ephemeris.NewDefaultManager(), DefaultConfig())
}

// gregorianDate builds the UTC midnight time.Time representing Gregorian
// civil day (y,m,d), the same convention astronomy.CalculateSunTimes and
// friends use for their date argument.
func gregorianDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// GregorianToJD converts a proleptic-Gregorian civil date to its Julian
// day number (UT, noon-based).
func (s *Service) GregorianToJD(y, m, d int) float64 {
	return float64(ephemeris.TimeToJulianDay(gregorianDate(y, m, d)))
}

// JDToGregorian is the inverse of GregorianToJD.
func (s *Service) JDToGregorian(jd float64) (y, m, d int) {
	t := ephemeris.JulianDayToTime(ephemeris.JulianDay(jd))
	return t.Year(), int(t.Month()), t.Day()
}

// DayOfWeek returns the day of week at jd, 0 = Monday.
func (s *Service) DayOfWeek(jd float64) int {
	n := int(math.Floor(jd - 2433282 - 1.5))
	return ((n % 7) + 7) % 7
}

// SolarLongitude returns the Sun's apparent tropical ecliptic longitude
// at jdUT, in degrees.
func (s *Service) SolarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	pos, err := s.manager.GetSunPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("solar_longitude: %w", err)
	}
	return pos.Longitude, nil
}

// LunarLongitude returns the Moon's apparent tropical ecliptic longitude
// at jdUT, in degrees.
func (s *Service) LunarLongitude(ctx context.Context, jdUT float64) (float64, error) {
	pos, err := s.manager.GetMoonPosition(ctx, ephemeris.JulianDay(jdUT))
	if err != nil {
		return 0, fmt.Errorf("lunar_longitude: %w", err)
	}
	return pos.Longitude, nil
}

// Ayanamsa returns the mean Lahiri ayanamsa at jdUT, in degrees.
func (s *Service) Ayanamsa(jdUT float64) float64 {
	return ephemeris.LahiriAyanamsa(jdUT)
}

// SunriseJD returns the Julian day of sunrise for the civil day whose UT
// midnight is jdLocalMidnightUT, at loc.
func (s *Service) SunriseJD(ctx context.Context, jdLocalMidnightUT float64, loc astronomy.Location) (float64, error) {
	date := ephemeris.JulianDayToTime(ephemeris.JulianDay(jdLocalMidnightUT))
	sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		return 0, err
	}
	return float64(ephemeris.TimeToJulianDay(sunTimes.Sunrise)), nil
}

// SunsetJD returns the Julian day of sunset for the civil day whose UT
// midnight is jdLocalMidnightUT, at loc.
func (s *Service) SunsetJD(ctx context.Context, jdLocalMidnightUT float64, loc astronomy.Location) (float64, error) {
	date := ephemeris.JulianDayToTime(ephemeris.JulianDay(jdLocalMidnightUT))
	sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		return 0, err
	}
	return float64(ephemeris.TimeToJulianDay(sunTimes.Sunset)), nil
}

// TithiAtSunrise returns the tithi governing civil day (y,m,d) at loc.
func (s *Service) TithiAtSunrise(ctx context.Context, y, m, d int, loc astronomy.Location) (*astronomy.TithiInfo, error) {
	ctx, span := s.observer.CreateSpan(ctx, "Service.TithiAtSunrise")
	defer span.End()
	return s.tithiCalc.TithiAtSunrise(ctx, loc, gregorianDate(y, m, d))
}

// MasaForDate returns the lunar month governing civil day (y,m,d) at loc.
func (s *Service) MasaForDate(ctx context.Context, y, m, d int, loc astronomy.Location) (*astronomy.MasaInfo, error) {
	ctx, span := s.observer.CreateSpan(ctx, "Service.MasaForDate")
	defer span.End()
	return s.masaCalc.GetMasaForDate(ctx, loc, gregorianDate(y, m, d))
}

// GregorianToHindu resolves the full lunisolar HinduDate for civil day
// (y,m,d) at loc.
func (s *Service) GregorianToHindu(ctx context.Context, y, m, d int, loc astronomy.Location) (*HinduDate, error) {
	ctx, span := s.observer.CreateSpan(ctx, "Service.GregorianToHindu")
	defer span.End()
	span.SetAttributes(attribute.Int("year", y), attribute.Int("month", m), attribute.Int("day", d))

	if err := astronomy.ValidateLocation(loc); err != nil {
		span.RecordError(err)
		return nil, err
	}

	date := gregorianDate(y, m, d)

	tithi, err := s.tithiCalc.TithiAtSunrise(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("gregorian_to_hindu: %w", err)
	}
	masa, err := s.masaCalc.GetMasaForDate(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("gregorian_to_hindu: %w", err)
	}

	prevTithi, err := s.tithiCalc.TithiAtSunrise(ctx, loc, date.AddDate(0, 0, -1))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("gregorian_to_hindu: %w", err)
	}
	isAdhikaTithi := prevTithi.Number == tithi.Number
	tithi.IsAdhika = isAdhikaTithi

	logger.InfoContext(ctx, "resolved hindu date",
		"saka_year", masa.SakaYear, "masa", masa.Name, "paksha", tithi.Paksha, "tithi", tithi.PakshaDay)

	return &HinduDate{
		YearSaka:      masa.SakaYear,
		YearVikram:    masa.VikramYear,
		Masa:          masa.Name,
		IsAdhikaMasa:  masa.IsAdhika,
		Paksha:        tithi.Paksha,
		Tithi:         tithi.PakshaDay,
		IsAdhikaTithi: isAdhikaTithi,
	}, nil
}

// GregorianToSolar resolves the regional solar date for civil day
// (y,m,d) at loc, per calendar cal.
func (s *Service) GregorianToSolar(ctx context.Context, y, m, d int, loc astronomy.Location, cal solarcalendar.CalendarType) (*solarcalendar.SolarDate, error) {
	return s.solarConv.GregorianToSolar(ctx, loc, y, m, d, cal)
}

// SolarToGregorian is the inverse of GregorianToSolar.
func (s *Service) SolarToGregorian(ctx context.Context, sd *solarcalendar.SolarDate, loc astronomy.Location) (y, m, d int, err error) {
	t, err := s.solarConv.SolarToGregorian(ctx, loc, sd)
	if err != nil {
		return 0, 0, 0, err
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// FullPanchangam resolves every supplemented daily attribute in addition
// to the lunisolar HinduDate: nakshatra, yoga, karana, vara, the
// traditional inauspicious/auspicious periods, and the civil day's date
// in all four regional solar calendars.
func (s *Service) FullPanchangam(ctx context.Context, y, m, d int, loc astronomy.Location) (*FullPanchangam, error) {
	ctx, span := s.observer.CreateSpan(ctx, "Service.FullPanchangam")
	defer span.End()

	date := gregorianDate(y, m, d)

	hindu, err := s.GregorianToHindu(ctx, y, m, d, loc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	nakshatra, err := s.nakshatraCalc.GetNakshatraForDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	yoga, err := s.yogaCalc.GetYogaForDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	karana, err := s.karanaCalc.GetKaranaForDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	nextSunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date.AddDate(0, 0, 1))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	vara, err := s.varaCalc.GetVaraFromGregorianDay(ctx, date.Weekday(), sunTimes.Sunrise, nextSunTimes.Sunrise, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	traditional, err := astronomy.CalculateTraditionalPeriodsWithContext(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tithi, err := s.tithiCalc.TithiAtSunrise(ctx, loc, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	festivals, err := s.festivalCal.GetFestivalsForDate(ctx, date, tithi.Number)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	solar := make(map[solarcalendar.CalendarType]*solarcalendar.SolarDate, 4)
	for _, cal := range []solarcalendar.CalendarType{solarcalendar.Tamil, solarcalendar.Bengali, solarcalendar.Odia, solarcalendar.Malayalam} {
		sd, err := s.solarConv.GregorianToSolar(ctx, loc, y, m, d, cal)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("full panchangam: %s: %w", cal, err)
		}
		solar[cal] = sd
	}

	return &FullPanchangam{
		Date:        date.Format("2006-01-02"),
		Hindu:       *hindu,
		Nakshatra:   nakshatra,
		Yoga:        yoga,
		Karana:      karana,
		Vara:        vara,
		Traditional: traditional,
		Festivals:   festivals,
		Solar:       solar,
	}, nil
}
