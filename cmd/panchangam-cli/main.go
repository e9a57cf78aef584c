package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/ephemeris"
	"github.com/vedavox/panchangam/panchangam"
	"github.com/vedavox/panchangam/solarcalendar"
)

var (
	year          int
	month         int
	day           int
	calendarFlag  string
	locationFlag  string
	utcOffsetFlag float64
	timezoneFlag  string
	outputFlag    string
	configFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "panchangam-cli",
		Short:         "Compute the Hindu panchang and regional solar calendar date for a Gregorian date",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().IntVarP(&year, "year", "y", 0, "Gregorian year (required)")
	rootCmd.Flags().IntVarP(&month, "month", "m", 0, "Gregorian month, 1-12 (required)")
	rootCmd.Flags().IntVarP(&day, "day", "d", 0, "Gregorian day; omit to print a month table")
	rootCmd.Flags().StringVarP(&calendarFlag, "solar", "s", "", "regional solar calendar: tamil|bengali|odia|malayalam")
	rootCmd.Flags().StringVarP(&locationFlag, "location", "l", "", "LAT,LON (required)")
	rootCmd.Flags().Float64VarP(&utcOffsetFlag, "utc-offset", "u", 0, "UTC offset in hours, may be fractional (required unless -z is given)")
	rootCmd.Flags().StringVarP(&timezoneFlag, "timezone", "z", "", "IANA timezone name or UTC offset string (e.g. Asia/Kolkata, +05:30); overrides -u")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "text", "output format: text|yaml")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "YAML config file overlaying the defaults (cache settings, default location, region calendar map)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("year") || !cmd.Flags().Changed("month") {
		return fmt.Errorf("-y and -m are required")
	}
	if !cmd.Flags().Changed("location") {
		return fmt.Errorf("-l LAT,LON is required")
	}
	if !cmd.Flags().Changed("utc-offset") && !cmd.Flags().Changed("timezone") {
		return fmt.Errorf("-u UTC_OFFSET_HOURS or -z TIMEZONE is required")
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("-m must be between 1 and 12, got %d", month)
	}
	if outputFlag != "text" && outputFlag != "yaml" {
		return fmt.Errorf("-o must be text or yaml, got %q", outputFlag)
	}

	service, err := newService()
	if err != nil {
		return err
	}

	var loc astronomy.Location
	if cmd.Flags().Changed("timezone") {
		loc, err = parseLocationWithTimezone(service, locationFlag, timezoneFlag, year, month, day)
	} else {
		loc, err = parseLocation(locationFlag, utcOffsetFlag)
	}
	if err != nil {
		return err
	}

	var cal solarcalendar.CalendarType
	if calendarFlag != "" {
		cal, err = parseCalendar(calendarFlag)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	if cmd.Flags().Changed("day") {
		if day < 1 || day > 31 {
			return fmt.Errorf("-d must be between 1 and 31, got %d", day)
		}
		if outputFlag == "yaml" {
			return printSingleDayYAML(ctx, service, loc)
		}
		return printSingleDay(ctx, service, loc, cal)
	}
	if outputFlag == "yaml" {
		return printMonthTableYAML(ctx, service, loc)
	}
	return printMonthTable(ctx, service, loc)
}

// newService builds the Service either from the -c config file, when
// given, or from the package defaults.
func newService() (*panchangam.Service, error) {
	if configFlag == "" {
		return panchangam.NewDefaultService(), nil
	}
	cfg, err := panchangam.LoadConfigFile(configFlag)
	if err != nil {
		return nil, err
	}
	return panchangam.NewService(ephemeris.NewDefaultManager(), cfg), nil
}

func parseLocation(spec string, utcOffset float64) (astronomy.Location, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return astronomy.Location{}, fmt.Errorf("-l must be LAT,LON, got %q", spec)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return astronomy.Location{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return astronomy.Location{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	loc := astronomy.Location{Latitude: lat, Longitude: lon, UTCOffset: utcOffset}
	if err := astronomy.ValidateLocation(loc); err != nil {
		return astronomy.Location{}, err
	}
	return loc, nil
}

// parseLocationWithTimezone resolves lat,lon against a named IANA zone or
// UTC-offset string instead of a bare -u float, computing the civil
// UTC offset from the zone's actual clock reading on the requested date.
func parseLocationWithTimezone(service *panchangam.Service, spec, tz string, y, m, d int) (astronomy.Location, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return astronomy.Location{}, fmt.Errorf("-l must be LAT,LON, got %q", spec)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return astronomy.Location{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return astronomy.Location{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}

	date := time.Date(y, time.Month(m), maxInt(d, 1), 0, 0, 0, 0, time.UTC)
	loc, err := service.LocationFromTimezone(tz, lat, lon, 0, date)
	if err != nil {
		return astronomy.Location{}, err
	}
	if err := astronomy.ValidateLocation(loc); err != nil {
		return astronomy.Location{}, err
	}
	return loc, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func parseCalendar(s string) (solarcalendar.CalendarType, error) {
	switch strings.ToLower(s) {
	case "tamil":
		return solarcalendar.Tamil, nil
	case "bengali":
		return solarcalendar.Bengali, nil
	case "odia":
		return solarcalendar.Odia, nil
	case "malayalam":
		return solarcalendar.Malayalam, nil
	default:
		return "", fmt.Errorf("-s must be one of tamil|bengali|odia|malayalam, got %q", s)
	}
}

func printSingleDay(ctx context.Context, service *panchangam.Service, loc astronomy.Location, cal solarcalendar.CalendarType) error {
	hindu, err := service.GregorianToHindu(ctx, year, month, day, loc)
	if err != nil {
		return err
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date)
	if err != nil {
		return err
	}
	local := astronomy.LocalSunTimes(loc, date, sunTimes)

	fmt.Printf("%04d-%02d-%02d  sunrise %s local\n", year, month, day, local.Sunrise.Format("15:04:05"))
	fmt.Printf("  Tithi: %s Paksha, day %d  (Saka %d, Vikram %d, %s%s)\n",
		hindu.Paksha, hindu.Tithi, hindu.YearSaka, hindu.YearVikram, hindu.Masa, adhikaSuffix(hindu.IsAdhikaMasa))

	if cal != "" {
		sd, err := service.GregorianToSolar(ctx, year, month, day, loc, cal)
		if err != nil {
			return err
		}
		name, err := solarcalendar.MonthName(cal, sd.RegionalMonth)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: year %d, %s %d (rashi %d)\n", cal, sd.EraYear, name, sd.DayInMonth, sd.Rashi)
	}
	return nil
}

func printMonthTable(ctx context.Context, service *panchangam.Service, loc astronomy.Location) error {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	fmt.Printf("%-12s %-4s %-10s %-22s %s\n", "Date", "DOW", "Sunrise", "Tithi", "Masa")
	for d := 1; d <= daysInMonth; d++ {
		hindu, err := service.GregorianToHindu(ctx, year, month, d, loc)
		if err != nil {
			return fmt.Errorf("day %d: %w", d, err)
		}

		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
		sunTimes, err := astronomy.CalculateSunTimesWithContext(ctx, loc, date)
		if err != nil {
			return fmt.Errorf("day %d: %w", d, err)
		}
		local := astronomy.LocalSunTimes(loc, date, sunTimes)

		fmt.Printf("%-12s %-4s %-10s %-22s %s%s, Saka %d\n",
			date.Format("2006-01-02"),
			date.Weekday().String()[:3],
			local.Sunrise.Format("15:04:05"),
			fmt.Sprintf("%s %d", hindu.Paksha, hindu.Tithi),
			hindu.Masa, adhikaSuffix(hindu.IsAdhikaMasa), hindu.YearSaka,
		)
	}
	return nil
}

func adhikaSuffix(isAdhika bool) string {
	if isAdhika {
		return " (Adhika)"
	}
	return ""
}

// printSingleDayYAML prints the full panchang for one civil day as a
// single YAML document.
func printSingleDayYAML(ctx context.Context, service *panchangam.Service, loc astronomy.Location) error {
	full, err := service.FullPanchangam(ctx, year, month, day, loc)
	if err != nil {
		return err
	}
	return yaml.NewEncoder(os.Stdout).Encode(full)
}

// printMonthTableYAML prints the full panchang for every day in the month
// as a YAML sequence of documents.
func printMonthTableYAML(ctx context.Context, service *panchangam.Service, loc astronomy.Location) error {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	for d := 1; d <= daysInMonth; d++ {
		full, err := service.FullPanchangam(ctx, year, month, d, loc)
		if err != nil {
			return fmt.Errorf("day %d: %w", d, err)
		}
		if err := enc.Encode(full); err != nil {
			return fmt.Errorf("day %d: %w", d, err)
		}
	}
	return nil
}
