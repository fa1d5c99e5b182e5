package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kpiboard/domain/kpi"
	"kpiboard/internal/errors"
)

func sampleTables() []kpi.Table {
	tables := make([]kpi.Table, 0, len(TableSheets))
	for i, name := range TableSheets {
		t := kpi.Table{
			Name:    name,
			Months:  kpi.Months,
			Metrics: []string{"Métrica A", "Métrica B"},
			Values: [][]float64{
				{float64(i + 1), 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
				{1234.56, kpi.Missing(), 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			},
		}
		tables = append(tables, t)
	}
	return tables
}

func TestWriteAndLoadPreparedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prepared.xlsx")
	tables := sampleTables()

	summaries := []kpi.TableSummary{
		{Table: "Marketing_Geral", NumMetrics: 2, NumMonths: 12, TotalCells: 24, FilledCells: 23, EmptyCells: 1, FillPct: 95.8},
	}
	records := []kpi.LongRecord{
		{
			Table: "Marketing_Geral", Metric: "Métrica A", Year: 2025,
			Month: "Janeiro", MonthNum: 1,
			Date:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Value: 1,
		},
	}

	require.NoError(t, WritePrepared(path, tables, summaries, records))

	w, err := LoadPrepared(path)
	require.NoError(t, err)

	require.Equal(t, TableSheets, w.Order)

	mg, ok := w.Table("Marketing_Geral")
	require.True(t, ok)
	assert.Equal(t, kpi.Months, mg.Months)
	require.Equal(t, []string{"Métrica A", "Métrica B"}, mg.Metrics)
	assert.InDelta(t, 1234.56, mg.Values[1][0], 1e-9)
	assert.True(t, kpi.IsMissing(mg.Values[1][1]), "blank cell must come back as missing")

	require.Len(t, w.Summaries, 1)
	assert.Equal(t, 23, w.Summaries[0].FilledCells)
	assert.InDelta(t, 95.8, w.Summaries[0].FillPct, 1e-9)

	require.Len(t, w.Long, 1)
	assert.Equal(t, "Janeiro", w.Long[0].Month)
	assert.Equal(t, 2025, w.Long[0].Date.Year())
	assert.InDelta(t, 1, w.Long[0].Value, 1e-9)
}

func TestWritePreparedSheetNamesAndHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prepared.xlsx")
	require.NoError(t, WritePrepared(path, sampleTables(), nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The dashboard opens these sheets by name; they are contractual.
	want := append(append([]string{}, TableSheets...), SheetSummary, SheetConsolidated)
	for _, sheet := range want {
		idx, err := f.GetSheetIndex(sheet)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0, "missing sheet %s", sheet)
	}

	// Header contract of the consolidated sheet.
	rows, err := f.GetRows(SheetConsolidated)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Tabela", "Métrica", "Ano", "Mês", "Mês_Num", "Data", "Valor"}, rows[0])

	// First column of each table sheet is Métrica.
	rows, err = f.GetRows("Leads_Condominios")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Métrica", rows[0][0])

	// Default Sheet1 must be gone.
	idx, err := f.GetSheetIndex("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestLoadPreparedMissingFile(t *testing.T) {
	_, err := LoadPrepared(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputMissing, errors.GetCode(err))
}

func TestLoadPreparedMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadPrepared(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSheetMissing, errors.GetCode(err))
}

func TestSourceReaderReadsGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Marketing")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Marketing", "A1", "KPI - Marketing 2025"))
	require.NoError(t, f.SetCellValue("Marketing", "A4", "Seguidores Instagram"))
	require.NoError(t, f.SetCellValue("Marketing", "B4", 42))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grid, err := NewSourceReader(path, "Marketing").ReadGrid()
	require.NoError(t, err)
	assert.Equal(t, "KPI - Marketing 2025", grid.Cell(0, 0))
	assert.Equal(t, "Seguidores Instagram", grid.Cell(3, 0))
	assert.Equal(t, "42", grid.Cell(3, 1))
}

func TestSourceReaderMissingFile(t *testing.T) {
	_, err := NewSourceReader(filepath.Join(t.TempDir(), "gone.xlsx"), "Marketing").ReadGrid()
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputMissing, errors.GetCode(err))
}

func TestSourceReaderMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewSourceReader(path, "Marketing").ReadGrid()
	require.Error(t, err)
	assert.Equal(t, errors.CodeSheetMissing, errors.GetCode(err))
}
