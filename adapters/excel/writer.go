package excel

import (
	"log"

	"github.com/xuri/excelize/v2"

	"kpiboard/domain/kpi"
	"kpiboard/internal/errors"
)

// Fixed sheet names of the prepared workbook. The dashboard opens sheets
// by these names, so they are a compatibility contract.
const (
	SheetSummary      = "Resumo_Analitico"
	SheetConsolidated = "Dados_Consolidados_Long"
)

// Column headers of the summary and consolidated sheets, also contractual.
var (
	summaryHeader      = []interface{}{"Tabela", "Num_Métricas", "Num_Meses", "Total_Células", "Células_Preenchidas", "Células_Vazias", "Pct_Preenchimento"}
	consolidatedHeader = []interface{}{"Tabela", "Métrica", "Ano", "Mês", "Mês_Num", "Data", "Valor"}
)

// WritePrepared writes the full prepared workbook: one sheet per cleaned
// table (without the redundant table-tag column), the analytic summary and
// the consolidated long-format sheet. The file is written in one shot; on
// error nothing usable is left behind.
func WritePrepared(path string, tables []kpi.Table, summaries []kpi.TableSummary, records []kpi.LongRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if err := writeTableSheet(f, t); err != nil {
			return errors.WorkbookWrite(path, err)
		}
	}

	if err := writeSummarySheet(f, summaries); err != nil {
		return errors.WorkbookWrite(path, err)
	}
	if err := writeConsolidatedSheet(f, records); err != nil {
		return errors.WorkbookWrite(path, err)
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.WorkbookWrite(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WorkbookWrite(path, err)
	}

	log.Printf("[Writer] prepared workbook saved: %s (%d tables, %d long records)", path, len(tables), len(records))
	return nil
}

func writeTableSheet(f *excelize.File, t kpi.Table) error {
	if _, err := f.NewSheet(t.Name); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(t.Months)+1)
	header = append(header, "Métrica")
	for _, m := range t.Months {
		header = append(header, m)
	}
	if err := setRow(f, t.Name, 1, header); err != nil {
		return err
	}

	for r, metric := range t.Metrics {
		row := make([]interface{}, 0, len(t.Months)+1)
		row = append(row, metric)
		for _, v := range t.Values[r] {
			if kpi.IsMissing(v) {
				// Blank cell, not a sentinel value.
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		if err := setRow(f, t.Name, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summaries []kpi.TableSummary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := setRow(f, SheetSummary, 1, summaryHeader); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{s.Table, s.NumMetrics, s.NumMonths, s.TotalCells, s.FilledCells, s.EmptyCells, s.FillPct}
		if err := setRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeConsolidatedSheet(f *excelize.File, records []kpi.LongRecord) error {
	if _, err := f.NewSheet(SheetConsolidated); err != nil {
		return err
	}
	if err := setRow(f, SheetConsolidated, 1, consolidatedHeader); err != nil {
		return err
	}
	for i, rec := range records {
		row := []interface{}{rec.Table, rec.Metric, rec.Year, rec.Month, rec.MonthNum, rec.Date.Format("2006-01-02"), rec.Value}
		if err := setRow(f, SheetConsolidated, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
