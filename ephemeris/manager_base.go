package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vedavox/panchangam/observability"
	"go.opentelemetry.io/otel/attribute"
)

// JulianDay represents a Julian day number (TT or UT depending on context).
type JulianDay float64

// SolarPosition represents the Sun's apparent geocentric position.
type SolarPosition struct {
	JulianDay         JulianDay `json:"julian_day"`
	Longitude         float64   `json:"longitude"`          // Apparent geocentric ecliptic longitude, degrees
	MeanLongitude     float64   `json:"mean_longitude"`     // Mean longitude, degrees
	MeanAnomaly       float64   `json:"mean_anomaly"`       // Mean anomaly, degrees
	EquationOfCenter  float64   `json:"equation_of_center"` // Equation of center, degrees
	RightAscension    float64   `json:"right_ascension"`    // degrees
	Declination       float64   `json:"declination"`        // degrees
	Distance          float64   `json:"distance"`           // AU
	NutationLongitude float64   `json:"nutation_longitude"` // Delta psi, degrees
	ObliquityTrue     float64   `json:"obliquity_true"`     // True obliquity, degrees
}

// LunarPosition represents the Moon's apparent geocentric position.
type LunarPosition struct {
	JulianDay      JulianDay `json:"julian_day"`
	Longitude      float64   `json:"longitude"`       // Apparent geocentric ecliptic longitude, degrees
	Latitude       float64   `json:"latitude"`        // Ecliptic latitude, degrees
	RightAscension float64   `json:"right_ascension"` // degrees
	Declination    float64   `json:"declination"`     // degrees
	Distance       float64   `json:"distance"`        // km
	MeanLongitude  float64   `json:"mean_longitude"`  // degrees
}

// HealthStatus represents the health status of an ephemeris provider.
type HealthStatus struct {
	Available    bool          `json:"available"`
	LastCheck    time.Time     `json:"last_check"`
	DataStartJD  float64       `json:"data_start_jd"`
	DataEndJD    float64       `json:"data_end_jd"`
	ResponseTime time.Duration `json:"response_time"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Version      string        `json:"version,omitempty"`
	Source       string        `json:"source,omitempty"`
}

// EphemerisProvider is implemented by anything able to compute Sun/Moon
// geocentric positions for a Julian day number.
type EphemerisProvider interface {
	GetSunPosition(ctx context.Context, jd JulianDay) (*SolarPosition, error)
	GetMoonPosition(ctx context.Context, jd JulianDay) (*LunarPosition, error)
	IsAvailable(ctx context.Context) bool
	GetDataRange() (startJD, endJD JulianDay)
	GetProviderName() string
	GetVersion() string
	Close() error
}

// Manager manages a primary and fallback ephemeris provider with caching.
type Manager struct {
	primary  EphemerisProvider
	fallback EphemerisProvider
	cache    Cache
	observer observability.ObserverInterface
}

// NewManager creates a new ephemeris manager. fallback may be nil.
func NewManager(primary, fallback EphemerisProvider, cache Cache) *Manager {
	return &Manager{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		observer: observability.Observer(),
	}
}

// GetSunPosition retrieves the Sun's position with caching and fallback.
func (m *Manager) GetSunPosition(ctx context.Context, jd JulianDay) (*SolarPosition, error) {
	ctx, span := m.observer.CreateSpan(ctx, "ephemeris.GetSunPosition")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("julian_day", float64(jd)),
		attribute.String("operation", "get_sun_position"),
	)

	cacheKey := fmt.Sprintf("sun_position_%.6f", float64(jd))
	if cached, found := m.cache.Get(ctx, cacheKey); found {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		if position, ok := cached.(*SolarPosition); ok {
			return position, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	result, err := m.tryProvider(ctx, m.primary, "primary", func(p EphemerisProvider) (interface{}, error) {
		return p.GetSunPosition(ctx, jd)
	})

	var position *SolarPosition
	if err == nil {
		position = result.(*SolarPosition)
	} else if m.fallback != nil {
		span.AddEvent("primary provider failed, trying fallback")
		result, err = m.tryProvider(ctx, m.fallback, "fallback", func(p EphemerisProvider) (interface{}, error) {
			return p.GetSunPosition(ctx, jd)
		})
		if err == nil {
			position = result.(*SolarPosition)
		}
	}

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get sun position from all providers: %w", err)
	}

	m.cache.Set(ctx, cacheKey, position, 1*time.Hour)
	span.SetAttributes(attribute.Bool("success", true))
	return position, nil
}

// GetMoonPosition retrieves the Moon's position with caching and fallback.
func (m *Manager) GetMoonPosition(ctx context.Context, jd JulianDay) (*LunarPosition, error) {
	ctx, span := m.observer.CreateSpan(ctx, "ephemeris.GetMoonPosition")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("julian_day", float64(jd)),
		attribute.String("operation", "get_moon_position"),
	)

	cacheKey := fmt.Sprintf("moon_position_%.6f", float64(jd))
	if cached, found := m.cache.Get(ctx, cacheKey); found {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		if position, ok := cached.(*LunarPosition); ok {
			return position, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	result, err := m.tryProvider(ctx, m.primary, "primary", func(p EphemerisProvider) (interface{}, error) {
		return p.GetMoonPosition(ctx, jd)
	})

	var position *LunarPosition
	if err == nil {
		position = result.(*LunarPosition)
	} else if m.fallback != nil {
		span.AddEvent("primary provider failed, trying fallback")
		result, err = m.tryProvider(ctx, m.fallback, "fallback", func(p EphemerisProvider) (interface{}, error) {
			return p.GetMoonPosition(ctx, jd)
		})
		if err == nil {
			position = result.(*LunarPosition)
		}
	}

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get moon position from all providers: %w", err)
	}

	m.cache.Set(ctx, cacheKey, position, 1*time.Hour)
	span.SetAttributes(attribute.Bool("success", true))
	return position, nil
}

func (m *Manager) tryProvider(ctx context.Context, provider EphemerisProvider, providerType string, operation func(EphemerisProvider) (interface{}, error)) (interface{}, error) {
	if provider == nil {
		return nil, fmt.Errorf("%s provider is nil", providerType)
	}

	ctx, span := m.observer.CreateSpan(ctx, fmt.Sprintf("ephemeris.try_%s_provider", providerType))
	defer span.End()

	span.SetAttributes(
		attribute.String("provider_type", providerType),
		attribute.String("provider_name", provider.GetProviderName()),
		attribute.String("provider_version", provider.GetVersion()),
	)

	start := time.Now()
	result, err := operation(provider)
	duration := time.Since(start)

	span.SetAttributes(
		attribute.Int64("response_time_ms", duration.Milliseconds()),
		attribute.Bool("success", err == nil),
	)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

// GetHealthStatus reports the availability of the primary and fallback providers.
func (m *Manager) GetHealthStatus(ctx context.Context) map[string]*HealthStatus {
	status := make(map[string]*HealthStatus)

	check := func(p EphemerisProvider) *HealthStatus {
		start := time.Now()
		available := p.IsAvailable(ctx)
		startJD, endJD := p.GetDataRange()
		return &HealthStatus{
			Available:    available,
			LastCheck:    time.Now(),
			DataStartJD:  float64(startJD),
			DataEndJD:    float64(endJD),
			ResponseTime: time.Since(start),
			Version:      p.GetVersion(),
			Source:       p.GetProviderName(),
		}
	}

	if m.primary != nil {
		status["primary"] = check(m.primary)
	}
	if m.fallback != nil {
		status["fallback"] = check(m.fallback)
	}
	return status
}

// Close closes all providers and the cache.
func (m *Manager) Close() error {
	var errs []error
	if m.primary != nil {
		if err := m.primary.Close(); err != nil {
			errs = append(errs, fmt.Errorf("primary provider close error: %w", err))
		}
	}
	if m.fallback != nil {
		if err := m.fallback.Close(); err != nil {
			errs = append(errs, fmt.Errorf("fallback provider close error: %w", err))
		}
	}
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache close error: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// TimeToJulianDay converts a time.Time to a Julian day number (UT).
func TimeToJulianDay(t time.Time) JulianDay {
	utc := t.UTC()
	year := utc.Year()
	month := int(utc.Month())
	day := utc.Day()

	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5

	hour := float64(utc.Hour())
	minute := float64(utc.Minute())
	second := float64(utc.Second())
	jd += (hour-12.0)/24.0 + minute/1440.0 + second/86400.0

	return JulianDay(jd)
}

// JulianDayToTime converts a Julian day number (UT) back to a time.Time.
func JulianDayToTime(jd JulianDay) time.Time {
	z := math.Floor(float64(jd) + 0.5)
	f := float64(jd) + 0.5 - z

	var a float64
	if z < 2299161 {
		a = z
	} else {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := int(b - d - math.Floor(30.6001*e) + f)
	var month int
	if e < 14 {
		month = int(e - 1)
	} else {
		month = int(e - 13)
	}

	var year int
	if month > 2 {
		year = int(c - 4716)
	} else {
		year = int(c - 4715)
	}

	hours := f * 24
	hour := int(hours)
	minutes := (hours - float64(hour)) * 60
	minute := int(minutes)
	seconds := (minutes - float64(minute)) * 60
	second := int(seconds)
	nanosecond := int((seconds - float64(second)) * 1e9)

	return time.Date(year, time.Month(month), day, hour, minute, second, nanosecond, time.UTC)
}

// IsLeapYear reports whether the given Gregorian year is a leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
