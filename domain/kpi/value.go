package kpi

import (
	"strconv"
	"strings"
)

// Excel error literals that the source workbook leaks into cells. The
// Portuguese locale spells #VALUE! as #VALOR!.
var excelErrorLiterals = []string{"#DIV/0!", "#VALOR!", "#REF!"}

// NormalizeValue converts one raw cell into a numeric value or Missing().
// It never fails: error literals, blanks and anything unparseable all come
// back as missing.
//
// Currency and percent decorations (R$, %) are stripped, and numbers in
// Brazilian notation (1.234,56) are handled alongside plain floats.
func NormalizeValue(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}

	upper := strings.ToUpper(s)
	for _, lit := range excelErrorLiterals {
		if strings.Contains(upper, lit) {
			return Missing()
		}
	}

	// Strip currency and percent decorations.
	s = strings.ReplaceAll(upper, "R$", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing()
	}

	s = normalizeDecimalSeparators(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return v
}

// normalizeDecimalSeparators rewrites Brazilian-format numbers into the
// form strconv understands. 1.234,56 -> 1234.56 and 1,5 -> 1.5; values
// without a comma pass through untouched.
func normalizeDecimalSeparators(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	if strings.Contains(s, ".") {
		// Dot is the thousands separator, comma the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}
