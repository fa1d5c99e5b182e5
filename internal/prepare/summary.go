package prepare

import (
	"math"

	"kpiboard/domain/kpi"
)

// Summarize computes fill statistics for one cleaned table.
func Summarize(t kpi.Table) kpi.TableSummary {
	filled := 0
	for _, row := range t.Values {
		for _, v := range row {
			if !kpi.IsMissing(v) {
				filled++
			}
		}
	}

	total := len(t.Metrics) * len(t.Months)
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(filled)/float64(total)*1000) / 10
	}

	return kpi.TableSummary{
		Table:       t.Name,
		NumMetrics:  len(t.Metrics),
		NumMonths:   len(t.Months),
		TotalCells:  total,
		FilledCells: filled,
		EmptyCells:  total - filled,
		FillPct:     pct,
	}
}
