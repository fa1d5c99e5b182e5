package main

import (
	"log"

	"github.com/joho/godotenv"

	"kpiboard/adapters/excel"
	"kpiboard/internal/config"
	"kpiboard/ui"
)

// Serves the KPI dashboard over a previously prepared workbook.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	data, err := excel.LoadPrepared(cfg.Data.PreparedFile)
	if err != nil {
		log.Fatalf("Failed to load prepared workbook (run the prepare command first): %v", err)
	}

	app, err := ui.NewApp(data)
	if err != nil {
		log.Fatalf("Failed to initialize dashboard: %v", err)
	}

	if err := app.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
