// Package solarcalendar resolves the four regional solar calendars (Tamil,
// Bengali, Odia, Malayalam) that track the Sun's sidereal rashi rather than
// lunar months: a new regional month begins at the sankranti (rashi
// crossing) nearest a region-specific critical time.
package solarcalendar

import "fmt"

// CalendarType identifies a regional solar calendar.
type CalendarType string

const (
	Tamil     CalendarType = "tamil"
	Bengali   CalendarType = "bengali"
	Odia      CalendarType = "odia"
	Malayalam CalendarType = "malayalam"
)

// SolarDate is a civil date expressed in a regional solar calendar.
type SolarDate struct {
	CalendarType  CalendarType `json:"calendar_type"`
	EraYear       int          `json:"era_year"`
	RegionalMonth int          `json:"regional_month"` // 1-12, counted from the calendar's first_rashi
	DayInMonth    int          `json:"day_in_month"`   // 1-32
	Rashi         int          `json:"rashi"`          // 1-12, Mesha=1
}

// calendarMeta holds the fixed parameters distinguishing one regional
// calendar from another: the rashi that opens its year, the Gregorian-year
// offsets for its era, and its 12 month names in rashi order starting at
// first_rashi.
type calendarMeta struct {
	FirstRashi     int
	OnYearOffset   int // subtracted from the Gregorian year once the era's sankranti has occurred
	BeforeYearOffset int // subtracted otherwise
	MonthNames     [12]string
}

var calendarMetas = map[CalendarType]calendarMeta{
	Tamil: {
		FirstRashi:       1,
		OnYearOffset:     78,
		BeforeYearOffset: 79,
		MonthNames: [12]string{
			"Chithirai", "Vaigasi", "Aani", "Aadi", "Aavani", "Purattasi",
			"Aippasi", "Karthikai", "Margazhi", "Thai", "Maasi", "Panguni",
		},
	},
	Bengali: {
		FirstRashi:       1,
		OnYearOffset:     593,
		BeforeYearOffset: 594,
		MonthNames: [12]string{
			"Baisakh", "Jyaistha", "Asharh", "Shravan", "Bhadra", "Ashwin",
			"Kartik", "Agrahayan", "Poush", "Magh", "Falgun", "Chaitra",
		},
	},
	Odia: {
		FirstRashi:       1,
		OnYearOffset:     78,
		BeforeYearOffset: 79,
		MonthNames: [12]string{
			"Baisakha", "Jystha", "Ashadha", "Shraavana", "Bhadraba", "Aswina",
			"Kartika", "Margasira", "Pousha", "Magha", "Phalguna", "Chaitra",
		},
	},
	Malayalam: {
		FirstRashi:       5,
		OnYearOffset:     824,
		BeforeYearOffset: 825,
		MonthNames: [12]string{
			"Chingam", "Kanni", "Thulam", "Vrischikam", "Dhanu", "Makaram",
			"Kumbham", "Meenam", "Medam", "Edavam", "Midhunam", "Karkidakam",
		},
	},
}

func metaFor(cal CalendarType) (calendarMeta, error) {
	meta, ok := calendarMetas[cal]
	if !ok {
		return calendarMeta{}, fmt.Errorf("solarcalendar: unknown calendar type %q", cal)
	}
	return meta, nil
}

// MonthName returns the regional name of a calendar's 1-12 month number.
func MonthName(cal CalendarType, regionalMonth int) (string, error) {
	meta, err := metaFor(cal)
	if err != nil {
		return "", err
	}
	if regionalMonth < 1 || regionalMonth > 12 {
		return "", fmt.Errorf("solarcalendar: regional month %d out of range [1,12]", regionalMonth)
	}
	return meta.MonthNames[regionalMonth-1], nil
}

// rashiToRegionalMonth converts a rashi (1-12, Mesha=1) to the calendar's
// regional month number, counting from its first_rashi.
func rashiToRegionalMonth(cal calendarMeta, rashi int) int {
	return ((rashi-cal.FirstRashi+12)%12 + 1)
}

// ValidateSolarDate sanity-checks a resolved SolarDate.
func ValidateSolarDate(sd *SolarDate) error {
	if sd == nil {
		return fmt.Errorf("solarcalendar: solar date cannot be nil")
	}
	if _, err := metaFor(sd.CalendarType); err != nil {
		return err
	}
	if sd.RegionalMonth < 1 || sd.RegionalMonth > 12 {
		return fmt.Errorf("solarcalendar: regional month %d out of range [1,12]", sd.RegionalMonth)
	}
	if sd.DayInMonth < 1 || sd.DayInMonth > 32 {
		return fmt.Errorf("solarcalendar: day-in-month %d out of range [1,32]", sd.DayInMonth)
	}
	if sd.Rashi < 1 || sd.Rashi > 12 {
		return fmt.Errorf("solarcalendar: rashi %d out of range [1,12]", sd.Rashi)
	}
	return nil
}
