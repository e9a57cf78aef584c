package panchangam

import (
	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/solarcalendar"
)

// HinduDate is the lunisolar civil-day label spec.md's data model names:
// the Saka/Vikram years, the masa in effect, and the tithi-at-sunrise
// paksha-local number.
type HinduDate struct {
	YearSaka      int    `json:"year_saka" yaml:"year_saka"`
	YearVikram    int    `json:"year_vikram" yaml:"year_vikram"`
	Masa          string `json:"masa" yaml:"masa"`
	IsAdhikaMasa  bool   `json:"is_adhika_masa" yaml:"is_adhika_masa"`
	Paksha        string `json:"paksha" yaml:"paksha"`
	Tithi         int    `json:"tithi" yaml:"tithi"` // 1-15, paksha-local
	IsAdhikaTithi bool   `json:"is_adhika_tithi" yaml:"is_adhika_tithi"`
}

// FullPanchangam is the complete daily panchang: the lunisolar HinduDate
// plus the supplemented nakshatra/yoga/karana/vara/traditional-period
// attributes the teacher's repository also computes, and the civil day's
// date in each of the four regional solar calendars.
type FullPanchangam struct {
	Date        string                                                   `json:"date" yaml:"date"`
	Hindu       HinduDate                                                `json:"hindu" yaml:"hindu"`
	Nakshatra   *astronomy.NakshatraInfo                                 `json:"nakshatra" yaml:"nakshatra"`
	Yoga        *astronomy.YogaInfo                                      `json:"yoga" yaml:"yoga"`
	Karana      *astronomy.KaranaInfo                                    `json:"karana" yaml:"karana"`
	Vara        *astronomy.VaraInfo                                      `json:"vara" yaml:"vara"`
	Traditional *astronomy.TraditionalPeriods                            `json:"traditional" yaml:"traditional"`
	Festivals   []astronomy.Festival                                     `json:"festivals,omitempty" yaml:"festivals,omitempty"`
	Solar       map[solarcalendar.CalendarType]*solarcalendar.SolarDate  `json:"solar,omitempty" yaml:"solar,omitempty"`
}
