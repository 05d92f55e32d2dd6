package normalizer

import (
	"testing"
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/identity"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func testContext() Context {
	roster := []employeedomain.Employee{
		{FirstName: "Jane", LastName: "Doe", Email: strPtr("jane.doe@corp.com"), Department: "Finance"},
		{FirstName: "Sam", LastName: "Smith", Department: "Engineering"},
	}
	return Context{
		Roster:      identity.NewSnapshot(roster),
		Overrides:   map[string]string{"contractor@agency.com": "External Ops"},
		LicenseRate: 60,
		Log:         zap.NewNop(),
	}
}

var openAIHeader = []string{
	"email", "name", "department", "period_start", "period_end",
	"first_day_active_in_period", "last_day_active_in_period",
	"messages", "tool_messages", "project_messages", "user_status",
}

func TestOpenAI_MonthlyLayout(t *testing.T) {
	table := Table{
		Header: openAIHeader,
		Rows: [][]string{
			{"jane.doe@corp.com", "Jane Doe", "Marketing", "2025-06-01", "2025-06-30", "2025-06-02", "2025-06-28", "42", "5", "0", "active"},
		},
	}

	n := newOpenAI(testContext())
	result, err := n.Normalize(table, "openai_june.csv")
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Zero(t, result.SkippedRows)

	primary := result.Records[0]
	assert.Equal(t, usagedomain.FeatureChatGPTMessages, primary.Feature)
	assert.Equal(t, int64(42), primary.Count)
	assert.Equal(t, 60.0, primary.MonetaryCost)
	// Roster dominates the vendor-supplied department.
	assert.Equal(t, "Finance", primary.Department)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), primary.OccurredOn)
	require.NotNil(t, primary.Email)
	assert.Equal(t, "jane.doe@corp.com", *primary.Email)
	assert.Equal(t, usagedomain.SourceChatGPT, primary.ToolSource)
	assert.Equal(t, "openai_june.csv", primary.OriginFile)

	secondary := result.Records[1]
	assert.Equal(t, usagedomain.FeatureToolMessages, secondary.Feature)
	assert.Equal(t, int64(5), secondary.Count)
	// Secondary features ride on the same license: zero incremental cost.
	assert.Zero(t, secondary.MonetaryCost)
}

func TestOpenAI_WeeklyLayoutMidpoint(t *testing.T) {
	table := Table{
		Header: openAIHeader,
		Rows: [][]string{
			// Period spans March into April; activity only in March.
			{"jane.doe@corp.com", "Jane Doe", "", "2025-03-30", "2025-04-05", "2025-03-30", "2025-03-31", "7", "", "", "active"},
			// Same period, activity only in April.
			{"sam.smith@corp.com", "Sam Smith", "", "2025-03-30", "2025-04-05", "2025-04-02", "2025-04-05", "3", "", "", "active"},
		},
	}

	n := newOpenAI(testContext())
	result, err := n.Normalize(table, "openai_week14.csv")
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), result.Records[0].OccurredOn)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), result.Records[1].OccurredOn)
}

func TestOpenAI_SkipsUnparseableDates(t *testing.T) {
	table := Table{
		Header: openAIHeader,
		Rows: [][]string{
			{"jane.doe@corp.com", "Jane Doe", "", "garbage", "", "", "", "10", "", "", "active"},
			{"jane.doe@corp.com", "Jane Doe", "", "2025-06-01", "2025-06-30", "", "", "10", "", "", "active"},
		},
	}

	n := newOpenAI(testContext())
	result, err := n.Normalize(table, "openai.csv")
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestOpenAI_DepartmentPrecedence(t *testing.T) {
	table := Table{
		Header: openAIHeader,
		Rows: [][]string{
			// Not in roster, manual override by email applies.
			{"contractor@agency.com", "Casey Jones", "Misc", "2025-06-01", "2025-06-30", "", "", "4", "", "", "active"},
			// Not in roster, no override: vendor hint wins.
			{"guest@other.com", "Guest User", "Research", "2025-06-01", "2025-06-30", "", "", "2", "", "", "active"},
			// Nothing at all: Unidentified sentinel.
			{"ghost@nowhere.com", "Ghost", "null", "2025-06-01", "2025-06-30", "", "", "1", "", "", "active"},
		},
	}

	n := newOpenAI(testContext())
	result, err := n.Normalize(table, "openai.csv")
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "External Ops", result.Records[0].Department)
	assert.Equal(t, "Research", result.Records[1].Department)
	assert.Equal(t, department.Unidentified, result.Records[2].Department)
}

func TestOpenAI_InactiveEmptyRowSkipped(t *testing.T) {
	table := Table{
		Header: openAIHeader,
		Rows: [][]string{
			{"jane.doe@corp.com", "Jane Doe", "", "2025-06-01", "2025-06-30", "", "", "0", "0", "0", "inactive"},
		},
	}

	n := newOpenAI(testContext())
	result, err := n.Normalize(table, "openai.csv")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestOpenAI_MissingColumnsUnknownFormat(t *testing.T) {
	table := Table{Header: []string{"foo", "bar"}, Rows: [][]string{{"a", "b"}}}
	n := newOpenAI(testContext())
	_, err := n.Normalize(table, "mystery.csv")
	assert.ErrorIs(t, err, usagedomain.ErrUnknownFormat)
}

func TestDetect(t *testing.T) {
	ctx := testContext()

	openai := Table{Header: openAIHeader}
	n, err := Detect(ctx, openai, "")
	require.NoError(t, err)
	assert.Equal(t, usagedomain.SourceChatGPT, n.Source())

	blueflame := Table{Header: []string{"Name", "Email", "Jan-25", "Feb-25"}}
	n, err = Detect(ctx, blueflame, "")
	require.NoError(t, err)
	assert.Equal(t, usagedomain.SourceBlueFlame, n.Source())

	// Hint wins over sniffing.
	n, err = Detect(ctx, openai, "blueflame")
	require.NoError(t, err)
	assert.Equal(t, usagedomain.SourceBlueFlame, n.Source())

	_, err = Detect(ctx, Table{Header: []string{"x", "y"}}, "")
	assert.ErrorIs(t, err, usagedomain.ErrUnknownFormat)
}
