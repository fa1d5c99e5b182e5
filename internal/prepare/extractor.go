package prepare

import (
	"strings"

	"kpiboard/domain/kpi"
)

// monthColumns is how many month columns every KPI block carries.
const monthColumns = 12

// TableSpec pins one KPI block to its location on the source sheet. Rows
// are 0-indexed, EndRow exclusive.
type TableSpec struct {
	Name         string
	StartRow     int
	EndRow       int
	MetricCol    int
	DataStartCol int
}

// DefaultTableSpecs returns the six blocks of the 2025 marketing sheet.
// The layout is fixed by the source workbook; moving a block there means
// updating these ranges.
func DefaultTableSpecs() []TableSpec {
	return []TableSpec{
		{Name: "Marketing_Geral", StartRow: 3, EndRow: 10, MetricCol: 0, DataStartCol: 1},
		{Name: "Leads_Condominios", StartRow: 11, EndRow: 30, MetricCol: 0, DataStartCol: 1},
		{Name: "Indices_Condominios", StartRow: 32, EndRow: 40, MetricCol: 0, DataStartCol: 1},
		{Name: "Campanha_Imoveis", StartRow: 42, EndRow: 52, MetricCol: 0, DataStartCol: 1},
		{Name: "Campanha_Boleto_Digital", StartRow: 53, EndRow: 59, MetricCol: 0, DataStartCol: 1},
		{Name: "Campanha_Multiseguros", StartRow: 60, EndRow: 70, MetricCol: 0, DataStartCol: 1},
	}
}

// ExtractTable slices one KPI block out of the raw grid and cleans it.
//
// The first sliced row may or may not be a month-name header: some blocks
// repeat the header, some ride on the sheet-level one. The block is treated
// as having its own header when the first data cell mentions January
// ("Janeiro"/"Jan"); otherwise the canonical month list is used and the
// first row is data.
func ExtractTable(grid kpi.Grid, spec TableSpec) kpi.Table {
	endRow := spec.EndRow
	if endRow > len(grid) {
		endRow = len(grid)
	}

	months := make([]string, monthColumns)
	dataStart := spec.StartRow

	if headerCell := grid.Cell(spec.StartRow, spec.DataStartCol); strings.Contains(headerCell, "Jan") {
		for c := 0; c < monthColumns; c++ {
			name := strings.TrimSpace(grid.Cell(spec.StartRow, spec.DataStartCol+c))
			if name == "" {
				name = kpi.Months[c]
			}
			months[c] = name
		}
		dataStart = spec.StartRow + 1
	} else {
		copy(months, kpi.Months)
	}

	table := kpi.Table{Name: spec.Name, Months: months}

	for r := dataStart; r < endRow; r++ {
		metric := strings.TrimSpace(grid.Cell(r, spec.MetricCol))
		if metric == "" {
			continue
		}

		values := make([]float64, monthColumns)
		allMissing := true
		for c := 0; c < monthColumns; c++ {
			values[c] = kpi.NormalizeValue(grid.Cell(r, spec.DataStartCol+c))
			if !kpi.IsMissing(values[c]) {
				allMissing = false
			}
		}
		if allMissing {
			continue
		}

		table.Metrics = append(table.Metrics, metric)
		table.Values = append(table.Values, values)
	}

	return table
}
