package normalizer

import (
	"strconv"
	"strings"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
)

// Table is one already-parsed export file: a header row plus cell rows, as
// handed over by the file-reading collaborator.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the first header matching any of names,
// compared case-insensitively after trimming, or -1.
func (t Table) Column(names ...string) int {
	for i, h := range t.Header {
		header := strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if header == name {
				return i
			}
		}
	}
	return -1
}

// Cell returns the raw cell at idx, tolerating ragged rows.
func (t Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCount reads a usage count cell. Absent and no-data cells, unparseable
// values and negatives all report ok=false; callers skip the cell.
func parseCount(raw string) (int64, bool) {
	value, ok := cell.Normalize(raw)
	if !ok || cell.IsNoData(value) {
		return 0, false
	}
	value = strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return int64(parsed), true
}
