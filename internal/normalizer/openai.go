package normalizer

import (
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/dates"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Column aliases across the monthly and weekly ChatGPT Enterprise layouts.
var (
	openAIEmailColumns       = []string{"email", "user email", "user_email"}
	openAINameColumns        = []string{"name", "user name", "user_name"}
	openAIDepartmentColumns  = []string{"department", "dept"}
	openAIPeriodStartColumns = []string{"period_start", "period start", "start date", "start_date"}
	openAIPeriodEndColumns   = []string{"period_end", "period end", "end date", "end_date"}
	openAIFirstActiveColumns = []string{"first_day_active_in_period", "first day active in period", "first_day_active"}
	openAILastActiveColumns  = []string{"last_day_active_in_period", "last day active in period", "last_day_active"}
	openAIMessageColumns     = []string{"messages", "message count", "messages_total"}
	openAIToolColumns        = []string{"tool_messages", "tool messages", "gpt_messages"}
	openAIProjectColumns     = []string{"project_messages", "project messages"}
	openAIStatusColumns      = []string{"user_status", "status", "is_active"}
)

// openAI normalizes ChatGPT Enterprise exports: one row per user per
// reporting period, monthly or weekly. Cost follows the license model:
// the monthly rate lands on the primary feature row of each licensed-active
// user; secondary feature rows are already covered by the license and carry
// zero incremental cost.
type openAI struct {
	ctx Context
}

func newOpenAI(ctx Context) *openAI { return &openAI{ctx: ctx} }

func (n *openAI) Source() string { return usagedomain.SourceChatGPT }

func (n *openAI) Normalize(table Table, originFile string) (Result, error) {
	emailIdx := table.Column(openAIEmailColumns...)
	startIdx := table.Column(openAIPeriodStartColumns...)
	messagesIdx := table.Column(openAIMessageColumns...)
	if emailIdx < 0 || startIdx < 0 || messagesIdx < 0 {
		return Result{}, usagedomain.ErrUnknownFormat
	}

	nameIdx := table.Column(openAINameColumns...)
	deptIdx := table.Column(openAIDepartmentColumns...)
	endIdx := table.Column(openAIPeriodEndColumns...)
	firstActiveIdx := table.Column(openAIFirstActiveColumns...)
	lastActiveIdx := table.Column(openAILastActiveColumns...)
	toolIdx := table.Column(openAIToolColumns...)
	projectIdx := table.Column(openAIProjectColumns...)
	statusIdx := table.Column(openAIStatusColumns...)

	var result Result
	for _, row := range table.Rows {
		periodStart, err := dates.Parse(table.Cell(row, startIdx))
		if err != nil {
			n.ctx.Log.Debug("skipping row with unparseable period start",
				zap.String("origin_file", originFile),
				zap.String("raw", table.Cell(row, startIdx)),
			)
			result.SkippedRows++
			continue
		}
		periodEnd := periodStart
		if endIdx >= 0 {
			if parsed, err := dates.Parse(table.Cell(row, endIdx)); err == nil {
				periodEnd = parsed
			}
		}
		occurredOn := dates.AssignMonth(
			periodStart,
			periodEnd,
			parseOptionalDate(table.Cell(row, firstActiveIdx)),
			parseOptionalDate(table.Cell(row, lastActiveIdx)),
		)

		email, hasEmail := cell.Normalize(table.Cell(row, emailIdx))
		name, hasName := cell.Normalize(table.Cell(row, nameIdx))
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

		messages, _ := parseCount(table.Cell(row, messagesIdx))
		active := messages > 0 || isActiveStatus(table.Cell(row, statusIdx))

		emitted := 0
		emit := func(feature string, count int64, cost float64) {
			record := &usagedomain.UsageRecord{
				UserIdentifier: identifierFor(email, name),
				DisplayName:    name,
				Department:     dept,
				OccurredOn:     occurredOn,
				Feature:        feature,
				Count:          count,
				MonetaryCost:   cost,
				ToolSource:     usagedomain.SourceChatGPT,
				OriginFile:     originFile,
				Metadata:       datatypes.JSONMap{"period_start": periodStart.Format("2006-01-02")},
			}
			if hasEmail {
				lowered := cell.Lower(email)
				record.Email = &lowered
			}
			result.Records = append(result.Records, record)
			emitted++
		}

		if active {
			// License-based cost model: the seat fee lands on the primary
			// feature row; secondary rows are covered by the same license.
			emit(usagedomain.FeatureChatGPTMessages, messages, n.ctx.LicenseRate)
		}
		if count, ok := parseCount(table.Cell(row, toolIdx)); ok && count > 0 {
			emit(usagedomain.FeatureToolMessages, count, 0)
		}
		if count, ok := parseCount(table.Cell(row, projectIdx)); ok && count > 0 {
			emit(usagedomain.FeatureProjectMessages, count, 0)
		}
		if emitted == 0 {
			result.SkippedRows++
		}
	}
	return result, nil
}

func parseOptionalDate(raw string) *time.Time {
	if cell.IsAbsent(raw) {
		return nil
	}
	parsed, err := dates.Parse(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func isActiveStatus(raw string) bool {
	value, ok := cell.Normalize(raw)
	if !ok {
		return false
	}
	switch value {
	case "active", "Active", "ACTIVE", "true", "True", "1", "yes", "Yes":
		return true
	default:
		return false
	}
}

func identifierFor(email, name string) string {
	if key := cell.Lower(email); key != "" {
		return key
	}
	return "name:" + cell.Lower(name)
}
