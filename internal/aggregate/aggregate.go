// Package aggregate deduplicates canonical usage across tool sources into a
// per-user analytics view. Implemented as a pure group-by-reduce over an
// immutable record slice; nothing here mutates shared state.
package aggregate

import (
	"sort"
	"strings"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/department"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/identity"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
)

// UserUsage is the post-dedup view of one logical user across all tools.
type UserUsage struct {
	Key         string   `json:"key"`
	Email       *string  `json:"email,omitempty"`
	DisplayName string   `json:"display_name"`
	Department  string   `json:"department"`
	TotalCount  int64    `json:"total_count"`
	TotalCost   float64  `json:"total_cost"`
	ToolSources string   `json:"tool_sources"`
	sources     map[string]struct{}
	departments []string
}

// Options tunes one aggregation pass. When Roster is set, department conflict
// resolution re-runs identity and department resolution per group instead of
// the first-non-placeholder fallback.
type Options struct {
	Roster    *identity.Snapshot
	Overrides map[string]string
	Top       int
}

// Aggregate groups records strictly by a user-level key: email when any
// record of the user carries one, a normalized display name otherwise.
// Grouping by (name, department) is deliberately not supported — it split
// one person across "different" users whenever tool sources disagreed about
// their department. Org-level aggregate records are excluded.
func Aggregate(records []usagedomain.UsageRecord, opts Options) []UserUsage {
	groups := make(map[string]*UserUsage)
	order := make([]string, 0)

	for i := range records {
		record := &records[i]
		if record.UserIdentifier == usagedomain.AggregateIdentifier {
			continue
		}
		key := groupKey(record)
		if key == "" {
			continue
		}
		group, ok := groups[key]
		if !ok {
			group = &UserUsage{
				Key:     key,
				sources: make(map[string]struct{}),
			}
			groups[key] = group
			order = append(order, key)
		}
		if group.Email == nil && record.Email != nil {
			email := strings.ToLower(*record.Email)
			group.Email = &email
		}
		if group.DisplayName == "" && record.DisplayName != "" {
			group.DisplayName = record.DisplayName
		}
		group.TotalCount += record.Count
		group.TotalCost += record.MonetaryCost
		group.sources[record.ToolSource] = struct{}{}
		group.departments = append(group.departments, record.Department)
	}

	out := make([]UserUsage, 0, len(groups))
	for _, key := range order {
		group := groups[key]
		group.Department = selectDepartment(group, opts)
		group.ToolSources = joinSources(group.sources)
		group.sources = nil
		group.departments = nil
		out = append(out, *group)
	}

	// Power-user ordering: total usage descending, key as a stable tiebreak.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return out[i].Key < out[j].Key
	})
	if opts.Top > 0 && len(out) > opts.Top {
		out = out[:opts.Top]
	}
	return out
}

func groupKey(record *usagedomain.UsageRecord) string {
	if record.Email != nil {
		if key := cell.Lower(*record.Email); key != "" {
			return key
		}
	}
	if key := cell.Lower(record.DisplayName); key != "" {
		return "name:" + key
	}
	return ""
}

// selectDepartment picks one department for a group with possibly
// conflicting raw values. With a roster snapshot the group is re-resolved
// (the stronger path); otherwise the first non-placeholder value in original
// row order wins, falling back to the first value seen.
func selectDepartment(group *UserUsage, opts Options) string {
	if opts.Roster != nil {
		email := ""
		if group.Email != nil {
			email = *group.Email
		}
		emp, _ := opts.Roster.ResolveDisplay(email, group.DisplayName)
		hint := firstNonPlaceholder(group.departments)
		return department.Resolve(department.Request{
			Employee:    emp,
			Email:       email,
			DisplayName: group.DisplayName,
			VendorHint:  hint,
		}, opts.Overrides)
	}

	if dept := firstNonPlaceholder(group.departments); dept != "" {
		return dept
	}
	if len(group.departments) > 0 {
		return group.departments[0]
	}
	return department.Unidentified
}

func firstNonPlaceholder(departments []string) string {
	for _, dept := range departments {
		if !department.IsPlaceholder(dept) {
			return dept
		}
	}
	return ""
}

func joinSources(sources map[string]struct{}) string {
	labels := make([]string, 0, len(sources))
	for label := range sources {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}
