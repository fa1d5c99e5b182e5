package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kpiboard/adapters/excel"
	"kpiboard/domain/kpi"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the dashboard application: a chi router serving six analysis
// modules over one prepared workbook loaded at startup.
type App struct {
	router    *chi.Mux
	data      *excel.PreparedWorkbook
	templates *template.Template
}

// NewApp creates the dashboard over an already-loaded prepared workbook.
func NewApp(data *excel.PreparedWorkbook) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		data:      data,
		templates: templates,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err == nil {
		a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Analysis modules
	a.router.Get("/", a.handleExecutiveSummary)
	a.router.Get("/marketing", a.handleMarketingPerformance)
	a.router.Get("/leads", a.handleLeadAnalytics)
	a.router.Get("/financial", a.handleFinancialKPIs)
	a.router.Get("/campaigns", a.handleCampaignManagement)
	a.router.Get("/comparative", a.handleComparativeAnalysis)

	// JSON API
	a.router.Get("/api/summary", a.handleSummaryJSON)
	a.router.Get("/api/tables/{table}/metrics", a.handleMetricsJSON)
	a.router.Get("/api/tables/{table}/series", a.handleSeriesJSON)
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	log.Printf("Starting KPI dashboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) table(name string) *kpi.Table {
	t, ok := a.data.Table(name)
	if !ok {
		return nil
	}
	return t
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
