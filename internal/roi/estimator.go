// Package roi derives time and monetary value estimates from normalized
// usage. Estimate is a pure function of the records and a configuration
// snapshot; there is no hidden state.
package roi

import (
	"sort"
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
)

type UserROI struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"display_name"`
	Department  string  `json:"department"`
	TotalCount  int64   `json:"total_count"`
	Hours       float64 `json:"hours_saved"`
	Value       float64 `json:"value"`
}

type DepartmentROI struct {
	Department string  `json:"department"`
	Users      int     `json:"users"`
	Hours      float64 `json:"hours_saved"`
	Value      float64 `json:"value"`
}

// Summary is the composite organization view. PeriodStart/PeriodEnd and the
// monthly average are only populated when the dataset carries valid
// (parseable, non-future) dates.
type Summary struct {
	PerUser        []UserROI       `json:"per_user"`
	PerDepartment  []DepartmentROI `json:"per_department"`
	TotalHours     float64         `json:"total_hours"`
	TotalValue     float64         `json:"total_value"`
	PeriodStart    *time.Time      `json:"period_start,omitempty"`
	PeriodEnd      *time.Time      `json:"period_end,omitempty"`
	Months         int             `json:"months"`
	MonthlyAverage float64         `json:"monthly_average"`
}

// Estimate computes time savings (count × minutes-per-feature / 60) and
// monetary value (hours × department hourly rate) across records. Rows with
// zero or future dates are excluded from date-range coverage but still
// contribute hours and value.
func Estimate(records []usagedomain.UsageRecord, cfg Config) Summary {
	now := time.Now().UTC()

	users := make(map[string]*UserROI)
	userOrder := make([]string, 0)
	var summary Summary
	var minDate, maxDate time.Time

	for i := range records {
		record := &records[i]
		if record.UserIdentifier == usagedomain.AggregateIdentifier {
			continue
		}
		hours := float64(record.Count) * cfg.minutesFor(record.Feature) / 60
		value := hours * cfg.rateFor(record.Department)
		summary.TotalHours += hours
		summary.TotalValue += value

		key := userKey(record)
		user, ok := users[key]
		if !ok {
			user = &UserROI{Key: key, DisplayName: record.DisplayName, Department: record.Department}
			users[key] = user
			userOrder = append(userOrder, key)
		}
		if user.Department == department.Unidentified && !department.IsPlaceholder(record.Department) {
			user.Department = record.Department
		}
		user.TotalCount += record.Count
		user.Hours += hours
		user.Value += value

		occurred := record.OccurredOn
		if occurred.IsZero() || occurred.After(now) {
			continue
		}
		if minDate.IsZero() || occurred.Before(minDate) {
			minDate = occurred
		}
		if maxDate.IsZero() || occurred.After(maxDate) {
			maxDate = occurred
		}
	}

	departments := make(map[string]*DepartmentROI)
	deptOrder := make([]string, 0)
	for _, key := range userOrder {
		user := users[key]
		summary.PerUser = append(summary.PerUser, *user)

		dept, ok := departments[user.Department]
		if !ok {
			dept = &DepartmentROI{Department: user.Department}
			departments[user.Department] = dept
			deptOrder = append(deptOrder, user.Department)
		}
		dept.Users++
		dept.Hours += user.Hours
		dept.Value += user.Value
	}
	sort.SliceStable(summary.PerUser, func(i, j int) bool {
		return summary.PerUser[i].Value > summary.PerUser[j].Value
	})
	for _, name := range deptOrder {
		summary.PerDepartment = append(summary.PerDepartment, *departments[name])
	}
	sort.SliceStable(summary.PerDepartment, func(i, j int) bool {
		return summary.PerDepartment[i].Value > summary.PerDepartment[j].Value
	})

	if !minDate.IsZero() {
		summary.PeriodStart = &minDate
		summary.PeriodEnd = &maxDate
		summary.Months = monthsBetween(minDate, maxDate)
		if summary.Months > 0 {
			summary.MonthlyAverage = summary.TotalValue / float64(summary.Months)
		}
	}
	return summary
}

func userKey(record *usagedomain.UsageRecord) string {
	if record.Email != nil {
		if key := cell.Lower(*record.Email); key != "" {
			return key
		}
	}
	if key := cell.Lower(record.DisplayName); key != "" {
		return "name:" + key
	}
	return record.UserIdentifier
}

func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}
