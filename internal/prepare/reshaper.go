package prepare

import (
	"time"

	"kpiboard/domain/kpi"
)

// Melt reshapes a cleaned table into long format: one record per
// (metric, month) observation. Column-major order, so all metrics for
// January come before February, matching the consolidated sheet layout.
//
// Records are dropped when the month name cannot be resolved to a calendar
// month or the value is missing. Both are filtering rules, not errors.
func Melt(t kpi.Table, year int) []kpi.LongRecord {
	var records []kpi.LongRecord
	for c, month := range t.Months {
		num, ok := kpi.MonthNumber(month)
		if !ok {
			continue
		}
		date := time.Date(year, time.Month(num), 1, 0, 0, 0, 0, time.UTC)
		for r, metric := range t.Metrics {
			value := t.Values[r][c]
			if kpi.IsMissing(value) {
				continue
			}
			records = append(records, kpi.LongRecord{
				Table:    t.Name,
				Metric:   metric,
				Year:     year,
				Month:    month,
				MonthNum: num,
				Date:     date,
				Value:    value,
			})
		}
	}
	return records
}
