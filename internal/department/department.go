// Package department applies the attribution precedence chain. The roster is
// authoritative, manual overrides patch non-employees, vendor hints come
// last, and the Unidentified sentinel closes the chain.
package department

import (
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
)

// Unidentified means "usage observed but no matching roster entry exists".
// Distinct from an employee whose roster department is literally "Unknown".
const Unidentified = "Unidentified User"

// Organization labels org-level aggregate records that carry no individual.
const Organization = "Organization"

// Request carries the inputs of one attribution decision. Employee is nil
// when identity resolution reported no match.
type Request struct {
	Employee    *employeedomain.Employee
	Email       string
	DisplayName string
	VendorHint  string
}

// Resolve returns exactly one department string, never empty.
//
// Precedence: roster department verbatim (even "Unknown") > manual override
// keyed by email or display name > vendor-supplied hint > Unidentified.
func Resolve(req Request, overrides map[string]string) string {
	if req.Employee != nil {
		return req.Employee.Department
	}
	if key := cell.Lower(req.Email); key != "" {
		if dept, ok := overrides[key]; ok {
			return dept
		}
	}
	if key := cell.Lower(req.DisplayName); key != "" {
		if dept, ok := overrides[key]; ok {
			return dept
		}
	}
	if hint, ok := cell.Normalize(req.VendorHint); ok {
		return hint
	}
	return Unidentified
}

// IsPlaceholder reports whether dept is a terminal bucket rather than a real
// organizational unit. "Unknown" is not a placeholder: it is a legitimate
// roster value and must stay distinguishable from Unidentified.
func IsPlaceholder(dept string) bool {
	switch dept {
	case "", Unidentified, Organization:
		return true
	default:
		return false
	}
}
