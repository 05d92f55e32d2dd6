// Package identity resolves usage-row identities against a roster snapshot.
// Lookup is email-first with a (first, last) name fallback; absence-sentinel
// strings are treated as missing fields, never as lookup keys.
package identity

import (
	"strings"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
)

// Snapshot is a read-only roster index scoped to one ingestion batch.
type Snapshot struct {
	byEmail map[string]*employeedomain.Employee
	byName  map[string]*employeedomain.Employee
}

func NewSnapshot(roster []employeedomain.Employee) *Snapshot {
	s := &Snapshot{
		byEmail: make(map[string]*employeedomain.Employee, len(roster)),
		byName:  make(map[string]*employeedomain.Employee, len(roster)),
	}
	for i := range roster {
		emp := &roster[i]
		if emp.Email != nil {
			if email := cell.Lower(*emp.Email); email != "" {
				s.byEmail[email] = emp
			}
		}
		if key, ok := nameKey(emp.FirstName, emp.LastName); ok {
			s.byName[key] = emp
		}
	}
	return s
}

func (s *Snapshot) Size() int { return len(s.byEmail) + len(s.byName) }

// Resolve looks up an employee by email, then by name. Absent or malformed
// inputs are not errors: the second return is simply false when no roster
// entry matches.
func (s *Snapshot) Resolve(email, firstName, lastName string) (*employeedomain.Employee, bool) {
	if key := cell.Lower(email); key != "" {
		if emp, ok := s.byEmail[key]; ok {
			return emp, true
		}
	}
	if key, ok := nameKey(firstName, lastName); ok {
		if emp, ok := s.byName[key]; ok {
			return emp, true
		}
	}
	return nil, false
}

// ResolveDisplay resolves using a vendor display name ("First Last") instead
// of split name fields.
func (s *Snapshot) ResolveDisplay(email, displayName string) (*employeedomain.Employee, bool) {
	first, last := SplitName(displayName)
	return s.Resolve(email, first, last)
}

// SplitName splits a display name into (first, rest). A single-token name
// yields an empty last name, which disables the name-fallback lookup.
func SplitName(displayName string) (string, string) {
	name, ok := cell.Normalize(displayName)
	if !ok {
		return "", ""
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func nameKey(first, last string) (string, bool) {
	f := cell.Lower(first)
	l := cell.Lower(last)
	if f == "" || l == "" {
		return "", false
	}
	return f + "\x00" + l, true
}
