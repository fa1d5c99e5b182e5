package prepare

import (
	"log"

	"kpiboard/adapters/excel"
	"kpiboard/domain/kpi"
	"kpiboard/internal"
	"kpiboard/internal/config"
	"kpiboard/internal/errors"
)

// Pipeline runs one full preparation pass: read the raw sheet, extract and
// clean the six KPI blocks, reshape, summarize and write the prepared
// workbook. Synchronous and all-or-nothing.
type Pipeline struct {
	cfg   config.DataConfig
	specs []TableSpec
}

// Report is what a completed run produced.
type Report struct {
	OutputPath  string
	Tables      []kpi.TableSummary
	LongRecords int
}

// NewPipeline creates a pipeline over the default table layout.
func NewPipeline(cfg config.DataConfig) *Pipeline {
	return &Pipeline{cfg: cfg, specs: DefaultTableSpecs()}
}

// Run executes the pipeline and writes the prepared workbook.
func (p *Pipeline) Run() (*Report, error) {
	reader := excel.NewSourceReader(p.cfg.SourceFile, p.cfg.SourceSheet)
	grid, err := reader.ReadGrid()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load source workbook")
	}

	tables := make([]kpi.Table, 0, len(p.specs))
	summaries := make([]kpi.TableSummary, 0, len(p.specs))
	var records []kpi.LongRecord

	for _, spec := range p.specs {
		table := ExtractTable(grid, spec)
		summary := Summarize(table)
		long := Melt(table, p.cfg.Year)

		log.Printf("[Pipeline] extracted %s: %d metrics, %.1f%% filled, %d long records",
			table.Name, summary.NumMetrics, summary.FillPct, len(long))
		logPreview(table)

		tables = append(tables, table)
		summaries = append(summaries, summary)
		records = append(records, long...)
	}

	if err := excel.WritePrepared(p.cfg.PreparedFile, tables, summaries, records); err != nil {
		return nil, errors.Wrap(err, "failed to write prepared workbook")
	}

	return &Report{
		OutputPath:  p.cfg.PreparedFile,
		Tables:      summaries,
		LongRecords: len(records),
	}, nil
}

// logPreview logs the first few metric names of a table. Preview output is
// debug-level: useful when checking row ranges against a new workbook, noise
// otherwise.
func logPreview(t kpi.Table) {
	max := 3
	if len(t.Metrics) < max {
		max = len(t.Metrics)
	}
	for i := 0; i < max; i++ {
		internal.DefaultLogger.Debug("[Pipeline]   %s | %s", t.Name, t.Metrics[i])
	}
}
