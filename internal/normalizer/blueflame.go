package normalizer

import (
	"sort"
	"strings"
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
	"gorm.io/datatypes"
)

var (
	blueFlameNameColumns  = []string{"name", "user", "user name", "user_name"}
	blueFlameEmailColumns = []string{"email", "user email", "user_email"}
	blueFlameTableColumns = []string{"table", "table_type", "record_type", "type"}
	blueFlameDeptColumns  = []string{"department", "dept"}
	blueFlameLabelColumns = []string{"metric", "label", "trend"}
)

// Table tags within one BlueFlame export.
const (
	tableAggregate   = "aggregate_trend"
	tableTopTotal    = "top_total"
	tableTopIncrease = "top_increase"
	tableTopDecrease = "top_decrease"
)

type parsedMonth struct {
	label string
	date  time.Time
}

// blueFlame normalizes BlueFlame AI exports. A single file interleaves
// logically distinct tables: aggregate trend rows and three named top-N user
// variants. Only named-user rows become per-user records; aggregate rows are
// emitted as org-level records and must never be turned into synthetic users.
type blueFlame struct {
	ctx Context
}

func newBlueFlame(ctx Context) *blueFlame { return &blueFlame{ctx: ctx} }

func (n *blueFlame) Source() string { return usagedomain.SourceBlueFlame }

func (n *blueFlame) Normalize(table Table, originFile string) (Result, error) {
	months := monthColumns(table)
	if len(months) == 0 {
		return Result{}, usagedomain.ErrUnknownFormat
	}
	monthOrder := sortedMonthIndexes(months)

	nameIdx := table.Column(blueFlameNameColumns...)
	emailIdx := table.Column(blueFlameEmailColumns...)
	tagIdx := table.Column(blueFlameTableColumns...)
	deptIdx := table.Column(blueFlameDeptColumns...)
	labelIdx := table.Column(blueFlameLabelColumns...)

	var result Result
	for _, row := range table.Rows {
		email, hasEmail := cell.Normalize(table.Cell(row, emailIdx))
		name, hasName := cell.Normalize(table.Cell(row, nameIdx))
		tag := classifyRow(table.Cell(row, tagIdx), hasEmail || hasName)

		if tag == tableAggregate {
			n.emitAggregate(&result, table, row, months, monthOrder, labelIdx, originFile)
			continue
		}

		if !hasEmail && !hasName {
			result.SkippedRows++
			continue
		}

		emp, _ := n.ctx.Roster.ResolveDisplay(email, name)
		dept := department.Resolve(department.Request{
			Employee:    emp,
			Email:       email,
			DisplayName: name,
			VendorHint:  table.Cell(row, deptIdx),
		}, n.ctx.Overrides)

		emitted := 0
		for _, idx := range monthOrder {
			raw := table.Cell(row, idx)
			if cell.IsNoData(raw) || cell.IsAbsent(raw) {
				continue
			}
			count, ok := parseCount(raw)
			if !ok {
				continue
			}
			record := &usagedomain.UsageRecord{
				UserIdentifier: identifierFor(email, name),
				DisplayName:    name,
				Department:     dept,
				OccurredOn:     months[idx].date,
				Feature:        usagedomain.FeatureBlueFlameMessages,
				Count:          count,
				ToolSource:     usagedomain.SourceBlueFlame,
				OriginFile:     originFile,
				Metadata:       datatypes.JSONMap{"table": tag, "month": months[idx].label},
			}
			if hasEmail {
				lowered := cell.Lower(email)
				record.Email = &lowered
			}
			result.Records = append(result.Records, record)
			emitted++
		}
		if emitted == 0 {
			result.SkippedRows++
		}
	}
	return result, nil
}

// emitAggregate converts an aggregate trend row into org-level records.
// No individual is attached; the aggregator excludes these from the per-user
// view by their identifier.
func (n *blueFlame) emitAggregate(result *Result, table Table, row []string, months map[int]parsedMonth, monthOrder []int, labelIdx int, originFile string) {
	label, ok := cell.Normalize(table.Cell(row, labelIdx))
	if !ok {
		label = "All Users"
	}
	emitted := 0
	for _, idx := range monthOrder {
		raw := table.Cell(row, idx)
		if cell.IsNoData(raw) || cell.IsAbsent(raw) {
			continue
		}
		count, ok := parseCount(raw)
		if !ok {
			continue
		}
		result.Records = append(result.Records, &usagedomain.UsageRecord{
			UserIdentifier: usagedomain.AggregateIdentifier,
			DisplayName:    label,
			Department:     department.Organization,
			OccurredOn:     months[idx].date,
			Feature:        usagedomain.FeatureBlueFlameMessages,
			Count:          count,
			ToolSource:     usagedomain.SourceBlueFlame,
			OriginFile:     originFile,
			Metadata:       datatypes.JSONMap{"table": tableAggregate, "month": months[idx].label},
		})
		emitted++
	}
	if emitted == 0 {
		result.SkippedRows++
	}
}

// classifyRow maps the row-level table tag to a known table type. Files
// without a tag column fall back to population: rows naming nobody are
// aggregate trend rows.
func classifyRow(rawTag string, named bool) string {
	tag, ok := cell.Normalize(rawTag)
	if !ok {
		if named {
			return tableTopTotal
		}
		return tableAggregate
	}
	switch t := strings.ToLower(tag); {
	case strings.Contains(t, "trend"), strings.Contains(t, "aggregate"):
		return tableAggregate
	case strings.Contains(t, "increase"):
		return tableTopIncrease
	case strings.Contains(t, "decrease"):
		return tableTopDecrease
	default:
		return tableTopTotal
	}
}

func sortedMonthIndexes(months map[int]parsedMonth) []int {
	order := make([]int, 0, len(months))
	for idx := range months {
		order = append(order, idx)
	}
	sort.Ints(order)
	return order
}
