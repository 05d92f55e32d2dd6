// Package normalizer converts vendor export tables into canonical usage
// records. One concrete strategy per vendor family; the format is sniffed
// once per file, never re-detected per row.
package normalizer

import (
	"strings"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/dates"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/identity"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"go.uber.org/zap"
)

// Context bundles the batch-scoped collaborators a normalizer delegates to.
// The roster snapshot is read-only for the life of one file.
type Context struct {
	Roster      *identity.Snapshot
	Overrides   map[string]string
	LicenseRate float64
	Log         *zap.Logger
}

// Result is the outcome of normalizing one file. SkippedRows counts rows
// recovered locally (bad dates, unattributable users, empty cells).
type Result struct {
	Records     []*usagedomain.UsageRecord
	SkippedRows int
}

// Normalizer converts one file's rows into canonical records. Implementations
// are restartable per file and retain no cross-file state.
type Normalizer interface {
	Source() string
	Normalize(table Table, originFile string) (Result, error)
}

// Detect picks the vendor strategy for a file, preferring an explicit hint
// and falling back to header sniffing.
func Detect(ctx Context, table Table, hint string) (Normalizer, error) {
	switch h := strings.ToLower(strings.TrimSpace(hint)); {
	case strings.Contains(h, "openai"), strings.Contains(h, "chatgpt"):
		return newOpenAI(ctx), nil
	case strings.Contains(h, "blueflame"):
		return newBlueFlame(ctx), nil
	}

	if looksLikeOpenAI(table) {
		return newOpenAI(ctx), nil
	}
	if looksLikeBlueFlame(table) {
		return newBlueFlame(ctx), nil
	}
	return nil, usagedomain.ErrUnknownFormat
}

func looksLikeOpenAI(table Table) bool {
	hasEmail := table.Column(openAIEmailColumns...) >= 0
	hasMessages := table.Column(openAIMessageColumns...) >= 0
	hasPeriod := table.Column(openAIPeriodStartColumns...) >= 0
	return hasEmail && hasMessages && hasPeriod
}

func looksLikeBlueFlame(table Table) bool {
	if table.Column(blueFlameTableColumns...) >= 0 {
		return true
	}
	return len(monthColumns(table)) > 0
}

// monthColumns indexes the compact Mon-YY month headers, excluding the
// sibling month-over-month variance column set.
func monthColumns(table Table) map[int]parsedMonth {
	months := make(map[int]parsedMonth)
	for i, h := range table.Header {
		header := strings.TrimSpace(h)
		if isVarianceHeader(header) {
			continue
		}
		if parsed, err := dates.Parse(header); err == nil {
			months[i] = parsedMonth{label: header, date: parsed}
		}
	}
	return months
}

func isVarianceHeader(header string) bool {
	h := strings.ToLower(header)
	for _, marker := range []string{" vs ", "mom", "%", "variance", "change", "delta"} {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}
