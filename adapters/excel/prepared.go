package excel

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kpiboard/domain/kpi"
	"kpiboard/internal/errors"
)

// TableSheets lists the cleaned-table sheets of the prepared workbook in
// presentation order.
var TableSheets = []string{
	"Marketing_Geral",
	"Leads_Condominios",
	"Indices_Condominios",
	"Campanha_Imoveis",
	"Campanha_Boleto_Digital",
	"Campanha_Multiseguros",
}

// PreparedWorkbook is the in-memory form of the prepared workbook the
// dashboard serves from.
type PreparedWorkbook struct {
	Tables    map[string]*kpi.Table
	Order     []string
	Summaries []kpi.TableSummary
	Long      []kpi.LongRecord
}

// Table returns a cleaned table by sheet name.
func (w *PreparedWorkbook) Table(name string) (*kpi.Table, bool) {
	t, ok := w.Tables[name]
	return t, ok
}

// LoadPrepared reads the whole prepared workbook back into memory. Any
// missing sheet is fatal: a partial workbook means the preparation run
// never completed.
func LoadPrepared(path string) (*PreparedWorkbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.InputMissing(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WorkbookRead(path, err)
	}
	defer f.Close()

	w := &PreparedWorkbook{Tables: make(map[string]*kpi.Table)}

	for _, name := range TableSheets {
		table, err := readTableSheet(f, name)
		if err != nil {
			return nil, err
		}
		w.Tables[name] = table
		w.Order = append(w.Order, name)
	}

	if w.Summaries, err = readSummarySheet(f); err != nil {
		return nil, err
	}
	if w.Long, err = readConsolidatedSheet(f); err != nil {
		return nil, err
	}

	log.Printf("[PreparedWorkbook] loaded %s (%d tables, %d long records)", path, len(w.Tables), len(w.Long))
	return w, nil
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, errors.SheetMissing(sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.SheetMissing(sheet)
	}
	return rows, nil
}

func readTableSheet(f *excelize.File, sheet string) (*kpi.Table, error) {
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	table := &kpi.Table{Name: sheet}
	for _, h := range rows[0][1:] {
		table.Months = append(table.Months, strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		values := make([]float64, len(table.Months))
		for c := range table.Months {
			cell := ""
			if c+1 < len(row) {
				cell = row[c+1]
			}
			values[c] = kpi.NormalizeValue(cell)
		}
		table.Metrics = append(table.Metrics, strings.TrimSpace(row[0]))
		table.Values = append(table.Values, values)
	}
	return table, nil
}

func readSummarySheet(f *excelize.File) ([]kpi.TableSummary, error) {
	rows, err := sheetRows(f, SheetSummary)
	if err != nil {
		return nil, err
	}

	var summaries []kpi.TableSummary
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		summaries = append(summaries, kpi.TableSummary{
			Table:       row[0],
			NumMetrics:  cellInt(row, 1),
			NumMonths:   cellInt(row, 2),
			TotalCells:  cellInt(row, 3),
			FilledCells: cellInt(row, 4),
			EmptyCells:  cellInt(row, 5),
			FillPct:     cellFloat(row, 6),
		})
	}
	return summaries, nil
}

func readConsolidatedSheet(f *excelize.File) ([]kpi.LongRecord, error) {
	rows, err := sheetRows(f, SheetConsolidated)
	if err != nil {
		return nil, err
	}

	var records []kpi.LongRecord
	for _, row := range rows[1:] {
		if len(row) < 7 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		date, _ := time.Parse("2006-01-02", row[5])
		records = append(records, kpi.LongRecord{
			Table:    row[0],
			Metric:   row[1],
			Year:     cellInt(row, 2),
			Month:    row[3],
			MonthNum: cellInt(row, 4),
			Date:     date,
			Value:    cellFloat(row, 6),
		})
	}
	return records, nil
}

func cellInt(row []string, col int) int {
	if col >= len(row) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		// Some writers emit integers as "7.0".
		if fv, ferr := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); ferr == nil {
			return int(fv)
		}
		return 0
	}
	return v
}

func cellFloat(row []string, col int) float64 {
	if col >= len(row) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0
	}
	return v
}
