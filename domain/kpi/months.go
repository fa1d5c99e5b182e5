package kpi

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Months is the canonical month-name header, in calendar order.
var Months = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Workbooks that went through a Windows-1252 round trip carry mangled
// accents; these spellings still have to resolve.
var corruptedMonthNames = map[string]int{
	"mar�o": 3,
	"mar?o":      3,
}

// stripAccents removes combining marks so "Março"/"Marco" compare equal.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// MonthNumber resolves a month name to its 1-12 calendar number. Matching
// is attempted exact, then case-insensitive, then accent-insensitive, then
// against known corrupted spellings. ok is false when nothing matches.
func MonthNumber(name string) (int, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, false
	}

	for i, m := range Months {
		if s == m {
			return i + 1, true
		}
	}

	lower := strings.ToLower(s)
	for i, m := range Months {
		if lower == strings.ToLower(m) {
			return i + 1, true
		}
	}

	folded := foldMonth(lower)
	for i, m := range Months {
		if folded == foldMonth(strings.ToLower(m)) {
			return i + 1, true
		}
	}

	if num, ok := corruptedMonthNames[lower]; ok {
		return num, true
	}
	return 0, false
}

// IsMonthName reports whether name resolves to a month.
func IsMonthName(name string) bool {
	_, ok := MonthNumber(name)
	return ok
}

func foldMonth(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}
