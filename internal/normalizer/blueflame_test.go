package normalizer

import (
	"testing"
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blueFlameHeader = []string{"table", "name", "email", "department", "Jan-25", "Feb-25", "Feb-25 MoM %"}

func TestBlueFlame_NamedUserRows(t *testing.T) {
	table := Table{
		Header: blueFlameHeader,
		Rows: [][]string{
			{"Top Users", "Jane Doe", "jane.doe@corp.com", "BlueFlame Users", "1,204", "987", "-18%"},
		},
	}

	n := newBlueFlame(testContext())
	result, err := n.Normalize(table, "blueflame_q1.csv")
	require.NoError(t, err)
	// One record per month column; the variance column contributes nothing.
	require.Len(t, result.Records, 2)

	jan := result.Records[0]
	assert.Equal(t, usagedomain.FeatureBlueFlameMessages, jan.Feature)
	assert.Equal(t, int64(1204), jan.Count)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), jan.OccurredOn)
	assert.Equal(t, "Finance", jan.Department) // roster beats the vendor bucket
	assert.Equal(t, usagedomain.SourceBlueFlame, jan.ToolSource)

	feb := result.Records[1]
	assert.Equal(t, int64(987), feb.Count)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), feb.OccurredOn)
}

func TestBlueFlame_NoDataCellsSkipped(t *testing.T) {
	table := Table{
		Header: blueFlameHeader,
		Rows: [][]string{
			{"Top Users", "Jane Doe", "jane.doe@corp.com", "", "-", "42", ""},
			{"Top Users", "Sam Smith", "", "", "—", "N/A", ""},
		},
	}

	n := newBlueFlame(testContext())
	result, err := n.Normalize(table, "blueflame.csv")
	require.NoError(t, err)
	// Jane keeps only February; Sam's row has no usable cells at all.
	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(42), result.Records[0].Count)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestBlueFlame_AggregateRowsNeverBecomeUsers(t *testing.T) {
	table := Table{
		Header: blueFlameHeader,
		Rows: [][]string{
			{"Aggregate Trend", "", "", "", "5,000", "6,200", "+24%"},
			{"Top Users by Increase", "Jane Doe", "jane.doe@corp.com", "", "100", "300", "+200%"},
		},
	}

	n := newBlueFlame(testContext())
	result, err := n.Normalize(table, "blueflame.csv")
	require.NoError(t, err)
	require.Len(t, result.Records, 4)

	for _, record := range result.Records[:2] {
		assert.Equal(t, usagedomain.AggregateIdentifier, record.UserIdentifier)
		assert.Equal(t, department.Organization, record.Department)
		assert.Nil(t, record.Email)
	}
	for _, record := range result.Records[2:] {
		assert.Equal(t, "jane.doe@corp.com", record.UserIdentifier)
		assert.Equal(t, "top_increase", record.Metadata["table"])
	}
}

func TestBlueFlame_UntaggedRowsClassifiedByPopulation(t *testing.T) {
	table := Table{
		Header: []string{"name", "email", "Mar-25"},
		Rows: [][]string{
			{"", "", "900"},                          // nobody named: aggregate trend
			{"Sam Smith", "", "55"},                  // named: per-user
			{"Casey Jones", "casey@agency.com", "7"}, // named: per-user
		},
	}

	n := newBlueFlame(testContext())
	result, err := n.Normalize(table, "blueflame.csv")
	require.NoError(t, err)
	require.Len(t, result.Records, 3)

	assert.Equal(t, usagedomain.AggregateIdentifier, result.Records[0].UserIdentifier)
	assert.Equal(t, "name:sam smith", result.Records[1].UserIdentifier)
	assert.Equal(t, "Engineering", result.Records[1].Department) // name-fallback roster hit
	assert.Equal(t, "casey@agency.com", result.Records[2].UserIdentifier)
}

func TestBlueFlame_NegativeAndGarbageCellsSkipped(t *testing.T) {
	table := Table{
		Header: []string{"name", "email", "Apr-25", "May-25"},
		Rows: [][]string{
			{"Jane Doe", "jane.doe@corp.com", "-12", "abc"},
		},
	}

	n := newBlueFlame(testContext())
	result, err := n.Normalize(table, "blueflame.csv")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestBlueFlame_NoMonthColumnsUnknownFormat(t *testing.T) {
	table := Table{Header: []string{"name", "email"}, Rows: [][]string{{"a", "b"}}}
	n := newBlueFlame(testContext())
	_, err := n.Normalize(table, "mystery.csv")
	assert.ErrorIs(t, err, usagedomain.ErrUnknownFormat)
}
