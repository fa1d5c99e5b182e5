package main

import (
	"log"

	"github.com/joho/godotenv"

	"kpiboard/internal/config"
	"kpiboard/internal/prepare"
)

// Reads the raw KPI workbook, cleans the six Marketing tables and writes
// the prepared workbook the dashboard serves from.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	p := prepare.NewPipeline(cfg.Data)
	report, err := p.Run()
	if err != nil {
		log.Fatalf("Preparation failed: %v", err)
	}

	log.Printf("Prepared workbook written to %s", report.OutputPath)
	for _, s := range report.Tables {
		log.Printf("  %s: %d metrics, %d/%d cells filled (%.1f%%)",
			s.Table, s.NumMetrics, s.FilledCells, s.TotalCells, s.FillPct)
	}
	log.Printf("  Consolidated long records: %d", report.LongRecords)
}
