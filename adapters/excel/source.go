package excel

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"kpiboard/domain/kpi"
	"kpiboard/internal/errors"
)

// SourceReader reads the raw KPI sheet out of the source workbook.
type SourceReader struct {
	filePath string
	sheet    string
}

// NewSourceReader creates a reader for one sheet of a workbook.
func NewSourceReader(filePath, sheet string) *SourceReader {
	return &SourceReader{filePath: filePath, sheet: sheet}
}

// ReadGrid loads the whole sheet as an untyped cell grid. A missing file
// or missing sheet is fatal for the caller; cell content is not validated
// here.
func (r *SourceReader) ReadGrid() (kpi.Grid, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputMissing(r.filePath)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WorkbookRead(r.filePath, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.sheet)
	if err != nil || idx < 0 {
		return nil, errors.SheetMissing(r.sheet)
	}

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.WorkbookRead(r.filePath, err)
	}

	log.Printf("[SourceReader] loaded sheet %q from %s (%d rows)", r.sheet, r.filePath, len(rows))
	return kpi.Grid(rows), nil
}
