package roi

import (
	"testing"
	"time"

	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEstimate_HoursAndValue(t *testing.T) {
	cfg := MergeWithDefaults(Config{
		HourlyRates: map[string]float64{"Finance": 100},
	})
	records := []usagedomain.UsageRecord{
		{
			UserIdentifier: "jane.doe@corp.com",
			Email:          strPtr("jane.doe@corp.com"),
			DisplayName:    "Jane Doe",
			Department:     "Finance",
			Feature:        usagedomain.FeatureChatGPTMessages,
			Count:          60, // 60 × 5min = 5h
			OccurredOn:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			UserIdentifier: "jane.doe@corp.com",
			Email:          strPtr("jane.doe@corp.com"),
			DisplayName:    "Jane Doe",
			Department:     "Finance",
			Feature:        usagedomain.FeatureProjectMessages,
			Count:          6, // 6 × 10min = 1h
			OccurredOn:     time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := Estimate(records, cfg)
	assert.InDelta(t, 6, summary.TotalHours, 1e-9)
	assert.InDelta(t, 600, summary.TotalValue, 1e-9)

	require.Len(t, summary.PerUser, 1)
	assert.Equal(t, int64(66), summary.PerUser[0].TotalCount)
	assert.InDelta(t, 600, summary.PerUser[0].Value, 1e-9)

	require.Len(t, summary.PerDepartment, 1)
	assert.Equal(t, "Finance", summary.PerDepartment[0].Department)
	assert.Equal(t, 1, summary.PerDepartment[0].Users)

	// March through May inclusive.
	assert.Equal(t, 3, summary.Months)
	assert.InDelta(t, 200, summary.MonthlyAverage, 1e-9)
}

func TestEstimate_DefaultRateAndMinutes(t *testing.T) {
	cfg := DefaultConfig()
	records := []usagedomain.UsageRecord{
		{
			UserIdentifier: "x@corp.com",
			Email:          strPtr("x@corp.com"),
			Department:     "Mystery",
			Feature:        "Some New Feature",
			Count:          12, // 12 × 5min default = 1h
			OccurredOn:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := Estimate(records, cfg)
	assert.InDelta(t, 1, summary.TotalHours, 1e-9)
	assert.InDelta(t, 75, summary.TotalValue, 1e-9)
}

func TestEstimate_SkipsOrgAggregates(t *testing.T) {
	records := []usagedomain.UsageRecord{
		{
			UserIdentifier: usagedomain.AggregateIdentifier,
			DisplayName:    "All Users",
			Count:          100000,
			OccurredOn:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := Estimate(records, DefaultConfig())
	assert.Zero(t, summary.TotalHours)
	assert.Empty(t, summary.PerUser)
	assert.Nil(t, summary.PeriodStart)
}

func TestEstimate_FutureAndZeroDatesExcludedFromRange(t *testing.T) {
	future := time.Now().UTC().AddDate(1, 0, 0)
	records := []usagedomain.UsageRecord{
		{
			UserIdentifier: "a@corp.com",
			Email:          strPtr("a@corp.com"),
			Feature:        usagedomain.FeatureChatGPTMessages,
			Count:          12,
			OccurredOn:     time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			UserIdentifier: "a@corp.com",
			Email:          strPtr("a@corp.com"),
			Feature:        usagedomain.FeatureChatGPTMessages,
			Count:          12,
			OccurredOn:     future,
		},
		{
			UserIdentifier: "a@corp.com",
			Email:          strPtr("a@corp.com"),
			Feature:        usagedomain.FeatureChatGPTMessages,
			Count:          12,
		},
	}

	summary := Estimate(records, DefaultConfig())
	// All three rows still count toward hours.
	assert.InDelta(t, 3, summary.TotalHours, 1e-9)
	require.NotNil(t, summary.PeriodStart)
	assert.Equal(t, *summary.PeriodStart, *summary.PeriodEnd)
	assert.Equal(t, 1, summary.Months)
}

func TestEstimate_OrderedByValue(t *testing.T) {
	records := []usagedomain.UsageRecord{
		{UserIdentifier: "small@corp.com", Email: strPtr("small@corp.com"), Department: "A", Feature: usagedomain.FeatureChatGPTMessages, Count: 1},
		{UserIdentifier: "big@corp.com", Email: strPtr("big@corp.com"), Department: "B", Feature: usagedomain.FeatureChatGPTMessages, Count: 100},
	}

	summary := Estimate(records, DefaultConfig())
	require.Len(t, summary.PerUser, 2)
	assert.Equal(t, "big@corp.com", summary.PerUser[0].Key)
	require.Len(t, summary.PerDepartment, 2)
	assert.Equal(t, "B", summary.PerDepartment[0].Department)
}

func TestMergeWithDefaults(t *testing.T) {
	merged := MergeWithDefaults(Config{
		MinutesPerFeature: map[string]float64{
			"ChatGPT Messages": 8,
			"Bogus":            -1,
		},
		HourlyRates:       map[string]float64{"Legal": 200},
		DefaultHourlyRate: 90,
	})

	assert.Equal(t, 8.0, merged.MinutesPerFeature["ChatGPT Messages"])
	// Non-positive overrides are ignored.
	_, ok := merged.MinutesPerFeature["Bogus"]
	assert.False(t, ok)
	// Untouched defaults survive.
	assert.Equal(t, 10.0, merged.MinutesPerFeature["Project Messages"])
	assert.Equal(t, 200.0, merged.HourlyRates["Legal"])
	assert.Equal(t, 90.0, merged.DefaultHourlyRate)
	assert.Equal(t, 5.0, merged.DefaultMinutes)
}
