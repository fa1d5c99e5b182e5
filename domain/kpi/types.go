package kpi

import (
	"math"
	"time"
)

// Grid is the raw cell matrix of a single worksheet, one string per cell,
// exactly as the spreadsheet library hands it back.
type Grid [][]string

// Cell returns the cell at (row, col) or "" when the row is shorter than
// col. Worksheet rows are ragged: trailing empty cells are not stored.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Table is one extracted KPI block: a metric name per row and one numeric
// value per month column. Missing values are NaN.
type Table struct {
	Name    string
	Months  []string
	Metrics []string
	Values  [][]float64
}

// LongRecord is a single (table, metric, month) observation in tidy form.
type LongRecord struct {
	Table    string
	Metric   string
	Year     int
	Month    string
	MonthNum int
	Date     time.Time
	Value    float64
}

// TableSummary holds per-table fill statistics for the analytic summary
// sheet.
type TableSummary struct {
	Table       string
	NumMetrics  int
	NumMonths   int
	TotalCells  int
	FilledCells int
	EmptyCells  int
	FillPct     float64
}

// Missing is the canonical missing-value marker.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
