// Package cell normalizes raw export cell values. Vendor exports routinely
// encode absence as literal strings ("None", "nan", "NULL", "N/A") instead of
// true nulls, and "no data" as a lone dash in any of several Unicode forms.
// Every field-reading site in the pipeline goes through this package.
package cell

import "strings"

var absentForms = map[string]struct{}{
	"none": {},
	"nan":  {},
	"null": {},
	"n/a":  {},
}

// dash variants seen in BlueFlame exports: hyphen-minus plus the Unicode
// hyphen, non-breaking hyphen, figure dash, en dash, em dash, horizontal bar
// and minus sign.
var dashRunes = map[rune]struct{}{
	'-': {}, '‐': {}, '‑': {}, '‒': {},
	'–': {}, '—': {}, '―': {}, '−': {},
}

// Normalize trims raw and reports whether it carries a value. The second
// return is false for empty/whitespace-only strings and the null-sentinel
// forms, compared case-insensitively.
func Normalize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if _, ok := absentForms[strings.ToLower(value)]; ok {
		return "", false
	}
	return value, true
}

// IsAbsent reports whether raw normalizes to no value.
func IsAbsent(raw string) bool {
	_, ok := Normalize(raw)
	return !ok
}

// IsNoData reports whether raw is a "no data" placeholder: any lone dash
// variant or the literal "N/A". Callers skip such cells rather than read zero.
func IsNoData(raw string) bool {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, "n/a") {
		return true
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return false
	}
	_, ok := dashRunes[runes[0]]
	return ok
}

// Lower returns the lower-cased normalized value, or "" when absent. Used for
// case-insensitive lookup keys (emails, override keys).
func Lower(raw string) string {
	value, ok := Normalize(raw)
	if !ok {
		return ""
	}
	return strings.ToLower(value)
}
