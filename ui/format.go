package ui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"kpiboard/domain/kpi"
)

// ptBR renders numbers the way the source workbook does: dot for
// thousands, comma for decimals.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

const noValue = "—"

func formatMoney(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return ptBR.Sprintf("R$ %.2f", v)
}

func formatMoney0(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return ptBR.Sprintf("R$ %.0f", v)
}

func formatCount(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return ptBR.Sprintf("%.0f", v)
}

func formatPct(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return fmt.Sprintf("%.1f%%", v)
}

func formatPct2(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return fmt.Sprintf("%.2f%%", v)
}

func formatRatio(v float64) string {
	if kpi.IsMissing(v) {
		return noValue
	}
	return fmt.Sprintf("%.2fx", v)
}

// trendArrow compresses a per-month slope into a direction marker.
func trendArrow(slope float64) string {
	switch {
	case slope > 0:
		return "▲"
	case slope < 0:
		return "▼"
	default:
		return "→"
	}
}
