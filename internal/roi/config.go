package roi

// Config parameterizes one estimate call. It is an explicit immutable value:
// callers merge overrides with defaults and pass the result in, so every
// estimate is reproducible.
type Config struct {
	// MinutesPerFeature maps a feature tag to the minutes of work one usage
	// event is estimated to save.
	MinutesPerFeature map[string]float64 `mapstructure:"minutesPerFeature" json:"minutes_per_feature"`
	// HourlyRates maps a department to its loaded hourly rate.
	HourlyRates map[string]float64 `mapstructure:"hourlyRates" json:"hourly_rates"`
	// DefaultHourlyRate applies to departments missing from HourlyRates.
	DefaultHourlyRate float64 `mapstructure:"defaultHourlyRate" json:"default_hourly_rate"`
	// DefaultMinutes applies to feature tags missing from MinutesPerFeature.
	DefaultMinutes float64 `mapstructure:"defaultMinutes" json:"default_minutes"`
}

func DefaultConfig() Config {
	return Config{
		MinutesPerFeature: map[string]float64{
			"ChatGPT Messages":   5,
			"Tool Messages":      3,
			"Project Messages":   10,
			"BlueFlame Messages": 5,
		},
		HourlyRates:       map[string]float64{},
		DefaultHourlyRate: 75,
		DefaultMinutes:    5,
	}
}

// MergeWithDefaults overlays overrides onto the defaults without mutating
// either input.
func MergeWithDefaults(overrides Config) Config {
	merged := DefaultConfig()
	for feature, minutes := range overrides.MinutesPerFeature {
		if minutes > 0 {
			merged.MinutesPerFeature[feature] = minutes
		}
	}
	for dept, rate := range overrides.HourlyRates {
		if rate > 0 {
			merged.HourlyRates[dept] = rate
		}
	}
	if overrides.DefaultHourlyRate > 0 {
		merged.DefaultHourlyRate = overrides.DefaultHourlyRate
	}
	if overrides.DefaultMinutes > 0 {
		merged.DefaultMinutes = overrides.DefaultMinutes
	}
	return merged
}

func (c Config) minutesFor(feature string) float64 {
	if minutes, ok := c.MinutesPerFeature[feature]; ok {
		return minutes
	}
	return c.DefaultMinutes
}

func (c Config) rateFor(dept string) float64 {
	if rate, ok := c.HourlyRates[dept]; ok {
		return rate
	}
	return c.DefaultHourlyRate
}
