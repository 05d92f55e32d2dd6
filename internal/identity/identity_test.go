package identity

import (
	"testing"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testRoster() []employeedomain.Employee {
	return []employeedomain.Employee{
		{FirstName: "Jane", LastName: "Doe", Email: strPtr("jane.doe@corp.com"), Department: "Finance"},
		{FirstName: "Sam", LastName: "Smith", Department: "Engineering"}, // no email
		{FirstName: "Pat", LastName: "Lee", Email: strPtr("pat.lee@corp.com"), Department: "Unknown"},
	}
}

func TestResolve_EmailFirst(t *testing.T) {
	snap := NewSnapshot(testRoster())

	emp, ok := snap.Resolve("JANE.DOE@CORP.COM", "", "")
	require.True(t, ok)
	assert.Equal(t, "Finance", emp.Department)

	// Email wins even when the name points at someone else.
	emp, ok = snap.Resolve("jane.doe@corp.com", "Sam", "Smith")
	require.True(t, ok)
	assert.Equal(t, "Finance", emp.Department)
}

func TestResolve_NameFallback(t *testing.T) {
	snap := NewSnapshot(testRoster())

	// Each absent-email form skips the email lookup and falls through to name.
	for _, email := range []string{"", "  ", "None", "nan", "NULL", "n/a"} {
		emp, ok := snap.Resolve(email, "sam", "SMITH")
		require.True(t, ok, "email form %q", email)
		assert.Equal(t, "Engineering", emp.Department)
	}
}

func TestResolve_NotFound(t *testing.T) {
	snap := NewSnapshot(testRoster())

	_, ok := snap.Resolve("nobody@corp.com", "", "")
	assert.False(t, ok)

	_, ok = snap.Resolve("", "Sam", "")
	assert.False(t, ok, "partial name must not match")

	_, ok = snap.Resolve("", "", "")
	assert.False(t, ok)
}

func TestResolveDisplay(t *testing.T) {
	snap := NewSnapshot(testRoster())

	emp, ok := snap.ResolveDisplay("none", "Sam Smith")
	require.True(t, ok)
	assert.Equal(t, "Engineering", emp.Department)

	_, ok = snap.ResolveDisplay("", "Sam")
	assert.False(t, ok)
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Ana Maria Silva")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria Silva", last)

	first, last = SplitName("  null ")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
