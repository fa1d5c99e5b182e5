package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpiboard/adapters/excel"
	"kpiboard/domain/kpi"
)

func months3() []string { return []string{"Janeiro", "Fevereiro", "Março"} }

func testWorkbook() *excel.PreparedWorkbook {
	miss := kpi.Missing()
	tables := map[string]*kpi.Table{
		"Marketing_Geral": {
			Name:   "Marketing_Geral",
			Months: months3(),
			Metrics: []string{
				"Seguidores Instagram",
				"Custo geral de Ads",
				"Visualizações",
				"Alcance Orgânico",
				"Alcance Pago",
			},
			Values: [][]float64{
				{120, 135, 150},
				{2000, miss, 1800},
				{5000, 5200, 4800},
				{900, 950, 1000},
				{400, 500, 450},
			},
		},
		"Leads_Condominios": {
			Name:   "Leads_Condominios",
			Months: months3(),
			Metrics: []string{
				"Origem da proposta enviada - Indicação",
				"Lead convertido - Indicação",
			},
			Values: [][]float64{
				{4, 6, 2},
				{1, 2, 0},
			},
		},
		"Indices_Condominios": {
			Name:    "Indices_Condominios",
			Months:  months3(),
			Metrics: []string{"CAC", "MRR", "Recorrente mensal / Custo"},
			Values: [][]float64{
				{150, 140, 160},
				{12000, 12500, 13000},
				{0.9, 1.1, 1.3},
			},
		},
		"Campanha_Imoveis": {
			Name:    "Campanha_Imoveis",
			Months:  months3(),
			Metrics: []string{"Investimento", "Leads Gerados", "ROI"},
			Values: [][]float64{
				{1000, 1200, 800},
				{30, 40, 20},
				{5.5, 6.0, 4.0},
			},
		},
		"Campanha_Boleto_Digital": {
			Name:    "Campanha_Boleto_Digital",
			Months:  months3(),
			Metrics: []string{"Nº de Unidades", "Economia", "% da base"},
			Values: [][]float64{
				{100, 140, 180},
				{500, 700, 900},
				{0.10, 0.14, 0.18},
			},
		},
		"Campanha_Multiseguros": {
			Name:    "Campanha_Multiseguros",
			Months:  months3(),
			Metrics: []string{"Investimento", "Leads Gerados", "Clientes Convertidos", "ROI"},
			Values: [][]float64{
				{600, 650, 700},
				{20, 25, 30},
				{5, 6, 9},
				{2.0, 2.5, 3.0},
			},
		},
	}

	var summaries []kpi.TableSummary
	for _, name := range excel.TableSheets {
		t := tables[name]
		summaries = append(summaries, kpi.TableSummary{
			Table:      name,
			NumMetrics: len(t.Metrics),
			NumMonths:  len(t.Months),
			TotalCells: len(t.Metrics) * len(t.Months),
			FillPct:    100,
		})
	}

	return &excel.PreparedWorkbook{
		Tables:    tables,
		Order:     excel.TableSheets,
		Summaries: summaries,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(testWorkbook())
	require.NoError(t, err)
	return app
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestModulePagesRender(t *testing.T) {
	app := newTestApp(t)

	pages := []struct {
		path string
		want string
	}{
		{"/", "Executive Summary"},
		{"/marketing", "Instagram Followers"},
		{"/leads", "Proposals by Origin"},
		{"/financial", "Customer Acquisition Cost"},
		{"/campaigns", "Digital Billing"},
		{"/comparative", "Campaign Summary"},
	}

	for _, page := range pages {
		t.Run(page.path, func(t *testing.T) {
			rec := get(t, app, page.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), page.want)
		})
	}
}

func TestExecutiveSummaryCards(t *testing.T) {
	rec := get(t, newTestApp(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Customer Acquisition Cost")
	assert.Contains(t, body, "Monthly Recurring Revenue")
	// 120+135+150 followers.
	assert.Contains(t, body, "405")
}

func TestLeadAnalyticsConversionTable(t *testing.T) {
	rec := get(t, newTestApp(t), "/leads")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Indicação")
	// 3 conversions out of 12 proposals.
	assert.Contains(t, body, "25.00%")
}

func TestSummaryJSON(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 6)
	assert.Equal(t, "Marketing_Geral", out[0]["table"])
	assert.EqualValues(t, 5, out[0]["num_metrics"])
}

func TestMetricsJSON(t *testing.T) {
	app := newTestApp(t)

	rec := get(t, app, "/api/tables/Indices_Condominios/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Table   string   `json:"table"`
		Metrics []string `json:"metrics"`
		Months  []string `json:"months"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Indices_Condominios", out.Table)
	assert.Contains(t, out.Metrics, "CAC")
	assert.Equal(t, months3(), out.Months)

	rec = get(t, app, "/api/tables/Nope/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeriesJSONMissingBecomesNull(t *testing.T) {
	app := newTestApp(t)

	rec := get(t, app, "/api/tables/Marketing_Geral/series?metric=Custo")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Metric string     `json:"metric"`
		Values []*float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Custo geral de Ads", out.Metric)
	require.Len(t, out.Values, 3)
	require.NotNil(t, out.Values[0])
	assert.InDelta(t, 2000, *out.Values[0], 1e-9)
	assert.Nil(t, out.Values[1], "missing month must serialize as null")

	rec = get(t, app, "/api/tables/Marketing_Geral/series?metric=nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticAssetsServed(t *testing.T) {
	rec := get(t, newTestApp(t), "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sidebar")
}
