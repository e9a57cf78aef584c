package solarcalendar

import (
	"context"
	"fmt"
	"time"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// Converter resolves regional solar dates against the sankranti and
// critical-time rules of whichever calendar type each call names.
type Converter struct {
	manager  *ephemeris.Manager
	observer observability.ObserverInterface
}

// NewConverter creates a Converter backed by manager.
func NewConverter(manager *ephemeris.Manager) *Converter {
	return &Converter{manager: manager, observer: observability.Observer()}
}

// SankrantiToCivilDay assigns the sankranti at jdSankranti (the instant
// the Sun enters rashi) to the civil day that becomes day 1 of the new
// regional month, per the calendar's critical-time rule.
func (c *Converter) SankrantiToCivilDay(ctx context.Context, loc astronomy.Location, cal CalendarType, rashi int, jdSankranti float64) (time.Time, error) {
	localJD := jdSankranti + loc.UTCOffset/24.0 + 0.5
	floored := ephemeris.JulianDayToTime(ephemeris.JulianDay(localJD - 0.5))
	day := time.Date(floored.Year(), floored.Month(), floored.Day(), 0, 0, 0, 0, time.UTC)

	var assignNextDay bool
	if cal == Bengali {
		var err error
		assignNextDay, err = BengaliAssignsNextDay(ctx, c.manager, loc, day, jdSankranti, rashi)
		if err != nil {
			return time.Time{}, err
		}
	} else {
		crit, err := CriticalTimeJD(ctx, loc, day, cal)
		if err != nil {
			return time.Time{}, err
		}
		assignNextDay = jdSankranti > crit
	}

	if assignNextDay {
		day = day.AddDate(0, 0, 1)
	}
	return day, nil
}

// GregorianToSolar resolves the regional solar date in effect on the
// civil day (y,m,d) at loc, per calendar cal.
func (c *Converter) GregorianToSolar(ctx context.Context, loc astronomy.Location, y, m, d int, cal CalendarType) (*SolarDate, error) {
	ctx, span := c.observer.CreateSpan(ctx, "Converter.GregorianToSolar")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", y), attribute.Int("month", m), attribute.Int("day", d),
		attribute.String("calendar", string(cal)),
	)

	if err := astronomy.ValidateLocation(loc); err != nil {
		span.RecordError(err)
		return nil, err
	}

	meta, err := metaFor(cal)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	day := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	jdDay := float64(ephemeris.TimeToJulianDay(day))

	// Sample the rashi in effect at this civil day's critical time (or,
	// for Bengali, at local noon as a stand-in since its rule has no single
	// scalar instant) to know which rashi's sankranti to bisect for.
	var jdSample float64
	if cal == Bengali {
		jdSample = jdDay + 0.5 - loc.UTCOffset/24.0
	} else {
		jdSample, err = CriticalTimeJD(ctx, loc, day, cal)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	rashi, err := astronomy.SolarRashi(ctx, c.manager, jdSample)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	jdSankranti, err := SankrantiJD(ctx, c.manager, rashi, jdSample)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	monthStart, err := c.SankrantiToCivilDay(ctx, loc, cal, rashi, jdSankranti)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// If this civil day precedes the month-start day the sankranti
	// resolved to, the day actually belongs to the previous rashi's month:
	// back up one rashi and relocate its sankranti.
	if day.Before(monthStart) {
		rashi = rashi - 1
		if rashi < 1 {
			rashi = 12
		}
		jdSankranti, err = SankrantiJD(ctx, c.manager, rashi, jdSample-30)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		monthStart, err = c.SankrantiToCivilDay(ctx, loc, cal, rashi, jdSankranti)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	dayInMonth := int(jdDay-float64(ephemeris.TimeToJulianDay(monthStart))) + 1
	regionalMonth := rashiToRegionalMonth(meta, rashi)

	eraYear, err := c.eraYear(ctx, loc, day, cal, meta)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	solar := &SolarDate{
		CalendarType:  cal,
		EraYear:       eraYear,
		RegionalMonth: regionalMonth,
		DayInMonth:    dayInMonth,
		Rashi:         rashi,
	}
	span.SetAttributes(
		attribute.Int("era_year", solar.EraYear),
		attribute.Int("regional_month", solar.RegionalMonth),
		attribute.Int("day_in_month", solar.DayInMonth),
		attribute.Int("rashi", solar.Rashi),
	)
	return solar, nil
}

// eraYear locates the calendar's year-start sankranti (rashi =
// first_rashi) nearest this civil day and applies the on/before
// Gregorian-year offset depending on whether that sankranti has already
// occurred this Gregorian year.
func (c *Converter) eraYear(ctx context.Context, loc astronomy.Location, day time.Time, cal CalendarType, meta calendarMeta) (int, error) {
	gy := day.Year()
	// The year-start sankranti falls near month (3 + first_rashi), day 14.
	estMonth := time.Month(3 + meta.FirstRashi)
	est := time.Date(gy, estMonth, 14, 0, 0, 0, 0, time.UTC)
	jdEst := float64(ephemeris.TimeToJulianDay(est))

	jdSankranti, err := SankrantiJD(ctx, c.manager, meta.FirstRashi, jdEst)
	if err != nil {
		return 0, err
	}
	yearStartDay, err := c.SankrantiToCivilDay(ctx, loc, cal, meta.FirstRashi, jdSankranti)
	if err != nil {
		return 0, err
	}

	if !day.Before(yearStartDay) {
		return gy - meta.OnYearOffset, nil
	}
	return gy - meta.BeforeYearOffset, nil
}

// SolarToGregorian is the inverse of GregorianToSolar: given a regional
// solar date, find the Gregorian civil day it names.
func (c *Converter) SolarToGregorian(ctx context.Context, loc astronomy.Location, sd *SolarDate) (time.Time, error) {
	meta, err := metaFor(sd.CalendarType)
	if err != nil {
		return time.Time{}, err
	}
	if sd.RegionalMonth < 1 || sd.RegionalMonth > 12 {
		return time.Time{}, fmt.Errorf("solarcalendar: regional month %d out of range", sd.RegionalMonth)
	}

	rashi := ((sd.RegionalMonth-1)+meta.FirstRashi-1)%12 + 1

	// Estimate a Gregorian year whose era_year matches sd.EraYear, then
	// locate that rashi's sankranti near the matching season.
	gy := sd.EraYear + meta.OnYearOffset
	estMonth := time.Month((rashi+2)%12 + 1) // the rashi-to-season seed, refined by bisection
	est := time.Date(gy, estMonth, 15, 0, 0, 0, 0, time.UTC)
	jdEst := float64(ephemeris.TimeToJulianDay(est))

	jdSankranti, err := SankrantiJD(ctx, c.manager, rashi, jdEst)
	if err != nil {
		return time.Time{}, err
	}
	monthStart, err := c.SankrantiToCivilDay(ctx, loc, sd.CalendarType, rashi, jdSankranti)
	if err != nil {
		return time.Time{}, err
	}

	result := monthStart.AddDate(0, 0, sd.DayInMonth-1)

	// Verify round-trip era year; if the coarse year seed landed one
	// Gregorian year off (calendars whose year opens mid-Gregorian-year,
	// e.g. Malayalam), retry with the adjacent year.
	gotEraYear, err := c.eraYear(ctx, loc, result, sd.CalendarType, meta)
	if err != nil {
		return time.Time{}, err
	}
	if gotEraYear != sd.EraYear {
		for _, delta := range []int{1, -1} {
			est = time.Date(gy+delta, estMonth, 15, 0, 0, 0, 0, time.UTC)
			jdEst = float64(ephemeris.TimeToJulianDay(est))
			jdSankranti, err = SankrantiJD(ctx, c.manager, rashi, jdEst)
			if err != nil {
				continue
			}
			monthStart, err = c.SankrantiToCivilDay(ctx, loc, sd.CalendarType, rashi, jdSankranti)
			if err != nil {
				continue
			}
			candidate := monthStart.AddDate(0, 0, sd.DayInMonth-1)
			era, err := c.eraYear(ctx, loc, candidate, sd.CalendarType, meta)
			if err == nil && era == sd.EraYear {
				return candidate, nil
			}
		}
	}

	return result, nil
}
