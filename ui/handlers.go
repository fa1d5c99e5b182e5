package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpiboard/domain/kpi"
)

// Card is a headline metric tile.
type Card struct {
	Label string
	Value string
	Hint  string
}

// Bar is one horizontal bar of a server-rendered chart. Width is the bar
// length in percent of the widest value.
type Bar struct {
	Label string
	Value string
	Width float64
}

// PairBar is one month of a two-series grouped bar chart.
type PairBar struct {
	Label  string
	AValue string
	BValue string
	AWidth float64
	BWidth float64
}

// baseData carries what every page and the sidebar need.
func (a *App) baseData(title, active string) map[string]interface{} {
	totalMetrics := 0
	avgFill := 0.0
	for _, s := range a.data.Summaries {
		totalMetrics += s.NumMetrics
		avgFill += s.FillPct
	}
	if len(a.data.Summaries) > 0 {
		avgFill /= float64(len(a.data.Summaries))
	}

	return map[string]interface{}{
		"Title":         title,
		"Active":        active,
		"TotalMetrics":  totalMetrics,
		"TotalTables":   len(a.data.Summaries),
		"AvgFill":       formatPct(avgFill),
		"LongRecords":   len(a.data.Long),
	}
}

// seriesBars renders a monthly series as bars scaled to its maximum.
func seriesBars(s Series, format func(float64) string) []Bar {
	max := s.Max()
	bars := make([]Bar, 0, len(s.Months))
	for i, month := range s.Months {
		bar := Bar{Label: month, Value: noValue}
		if i < len(s.Values) && !kpi.IsMissing(s.Values[i]) {
			v := s.Values[i]
			bar.Value = format(v)
			if !kpi.IsMissing(max) && max > 0 && v > 0 {
				bar.Width = v / max * 100
			}
		}
		bars = append(bars, bar)
	}
	return bars
}

// pairBars renders two aligned series as grouped bars on a shared scale.
func pairBars(first, second Series, format func(float64) string) []PairBar {
	max := first.Max()
	if m := second.Max(); !kpi.IsMissing(m) && (kpi.IsMissing(max) || m > max) {
		max = m
	}

	months := first.Months
	if len(second.Months) > len(months) {
		months = second.Months
	}

	bars := make([]PairBar, 0, len(months))
	for i, month := range months {
		bar := PairBar{Label: month, AValue: noValue, BValue: noValue}
		if i < len(first.Values) && !kpi.IsMissing(first.Values[i]) {
			bar.AValue = format(first.Values[i])
			if !kpi.IsMissing(max) && max > 0 && first.Values[i] > 0 {
				bar.AWidth = first.Values[i] / max * 100
			}
		}
		if i < len(second.Values) && !kpi.IsMissing(second.Values[i]) {
			bar.BValue = format(second.Values[i])
			if !kpi.IsMissing(max) && max > 0 && second.Values[i] > 0 {
				bar.BWidth = second.Values[i] / max * 100
			}
		}
		bars = append(bars, bar)
	}
	return bars
}

// handleExecutiveSummary renders the consolidated overview module.
func (a *App) handleExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	indices := a.table("Indices_Condominios")
	marketing := a.table("Marketing_Geral")

	var cards []Card
	if s, ok := MetricSeries(indices, "CAC"); ok {
		cards = append(cards, Card{"Customer Acquisition Cost", formatMoney0(s.Mean()), "Custo médio de aquisição por cliente"})
	}
	if s, ok := MetricSeries(indices, "MRR"); ok {
		cards = append(cards, Card{"Monthly Recurring Revenue", formatMoney0(s.Mean()), "Receita recorrente mensal média"})
	}
	if s, ok := MetricSeries(marketing, "Seguidores"); ok {
		cards = append(cards, Card{"New Followers", formatCount(s.Sum()), "Total de novos seguidores no período"})
	}
	if s, ok := MetricSeries(marketing, "Custo geral de Ads"); ok {
		cards = append(cards, Card{"Ad Investment", formatMoney0(s.Sum()), "Investimento total em publicidade"})
	}

	completeness := make([]Bar, 0, len(a.data.Summaries))
	summaryRows := make([][]string, 0, len(a.data.Summaries))
	for _, s := range a.data.Summaries {
		completeness = append(completeness, Bar{Label: s.Table, Value: formatPct(s.FillPct), Width: s.FillPct})
		summaryRows = append(summaryRows, []string{s.Table, formatCount(float64(s.NumMetrics)), formatPct(s.FillPct)})
	}

	data := a.baseData("Executive Summary", "executive")
	data["Cards"] = cards
	data["Completeness"] = completeness
	data["SummaryRows"] = summaryRows
	a.renderTemplate(w, "executive.html", data)
}

// handleMarketingPerformance renders digital channel performance.
func (a *App) handleMarketingPerformance(w http.ResponseWriter, r *http.Request) {
	marketing := a.table("Marketing_Geral")

	data := a.baseData("Marketing Performance", "marketing")

	if s, ok := MetricSeries(marketing, "Seguidores"); ok {
		data["Followers"] = seriesBars(s, formatCount)
		data["FollowerCards"] = []Card{
			{Label: "Average", Value: formatCount(s.Mean())},
			{Label: "Maximum", Value: formatCount(s.Max())},
			{Label: "Minimum", Value: formatCount(s.Min())},
			{Label: "Total", Value: formatCount(s.Sum())},
		}
	}
	if s, ok := MetricSeries(marketing, "Custo geral de Ads"); ok {
		data["AdSpend"] = seriesBars(s, formatMoney0)
		data["AdSpendCards"] = []Card{
			{Label: "Total", Value: formatMoney(s.Sum())},
			{Label: "Average", Value: formatMoney(s.Mean())},
		}
	}
	if s, ok := MetricSeries(marketing, "Visualiza"); ok {
		data["Views"] = seriesBars(s, formatCount)
		data["ViewCards"] = []Card{
			{Label: "Total", Value: formatCount(s.Sum())},
			{Label: "Average", Value: formatCount(s.Mean())},
		}
	}

	organic, okO := MetricSeries(marketing, "Alcance Orgânico")
	paid, okP := MetricSeries(marketing, "Alcance Pago")
	if okO && okP {
		data["Reach"] = pairBars(organic, paid, formatCount)
	}

	a.renderTemplate(w, "marketing.html", data)
}

// handleLeadAnalytics renders lead generation and conversion by origin.
func (a *App) handleLeadAnalytics(w http.ResponseWriter, r *http.Request) {
	leads := a.table("Leads_Condominios")

	origins := ProposalsByOrigin(leads)
	grandTotal := 0.0
	maxTotal := 0.0
	for _, o := range origins {
		grandTotal += o.Total
		if o.Total > maxTotal {
			maxTotal = o.Total
		}
	}

	originBars := make([]Bar, 0, len(origins))
	originRows := make([][]string, 0, len(origins))
	for _, o := range origins {
		width := 0.0
		if maxTotal > 0 {
			width = o.Total / maxTotal * 100
		}
		share := 0.0
		if grandTotal > 0 {
			share = o.Total / grandTotal * 100
		}
		originBars = append(originBars, Bar{Label: o.Origin, Value: formatCount(o.Total), Width: width})
		originRows = append(originRows, []string{o.Origin, formatCount(o.Total), formatPct(share)})
	}

	conversions := ConversionRates(leads)
	maxRate := 0.0
	for _, c := range conversions {
		if c.Rate > maxRate {
			maxRate = c.Rate
		}
	}
	conversionBars := make([]Bar, 0, len(conversions))
	conversionRows := make([][]string, 0, len(conversions))
	for _, c := range conversions {
		width := 0.0
		if maxRate > 0 {
			width = c.Rate / maxRate * 100
		}
		conversionBars = append(conversionBars, Bar{Label: c.Source, Value: formatPct2(c.Rate), Width: width})
		conversionRows = append(conversionRows, []string{
			c.Source,
			formatCount(float64(c.Proposals)),
			formatCount(float64(c.Conversions)),
			formatPct2(c.Rate),
		})
	}

	data := a.baseData("Lead Analytics", "leads")
	data["OriginBars"] = originBars
	data["OriginRows"] = originRows
	data["ConversionBars"] = conversionBars
	data["ConversionRows"] = conversionRows
	a.renderTemplate(w, "leads.html", data)
}

// handleFinancialKPIs renders the financial indicators module.
func (a *App) handleFinancialKPIs(w http.ResponseWriter, r *http.Request) {
	indices := a.table("Indices_Condominios")

	data := a.baseData("Financial KPIs", "financial")

	if s, ok := MetricSeries(indices, "CAC"); ok {
		data["CAC"] = seriesBars(s, formatMoney0)
		data["CACCards"] = []Card{
			{Label: "Average CAC", Value: formatMoney(s.Mean())},
			{Label: "Minimum", Value: formatMoney(s.Min())},
			{Label: "Maximum", Value: formatMoney(s.Max())},
		}
	}
	if s, ok := MetricSeries(indices, "MRR"); ok {
		data["MRR"] = seriesBars(s, formatMoney0)
		data["MRRCards"] = []Card{
			{Label: "Average", Value: formatMoney(s.Mean())},
			{Label: "Total", Value: formatMoney(s.Sum())},
		}
	}
	if s, ok := MetricSeries(indices, "Recorrente mensal / Custo"); ok {
		data["ROI"] = seriesBars(s, formatRatio)
		data["ROICards"] = []Card{
			{Label: "Average", Value: formatRatio(s.Mean())},
			{Label: "Positive Months", Value: ptBR.Sprintf("%d/%d", s.PositiveMonths(1), s.Count()), Hint: "Months above break-even (1.0x)"},
		}
	}

	a.renderTemplate(w, "financial.html", data)
}

// campaignView is one campaign tab of the campaign management module.
type campaignView struct {
	Name  string
	Cards []Card
	Bars  []Bar
	Pairs []PairBar
}

// handleCampaignManagement renders the three campaign tabs.
func (a *App) handleCampaignManagement(w http.ResponseWriter, r *http.Request) {
	var views []campaignView

	// Real estate campaign.
	if imoveis := a.table("Campanha_Imoveis"); imoveis != nil {
		view := campaignView{Name: "Real Estate"}
		if s, ok := MetricSeries(imoveis, "Investimento"); ok {
			view.Cards = append(view.Cards, Card{Label: "Total Investment", Value: formatMoney(s.Sum())})
			view.Bars = seriesBars(s, formatMoney0)
		}
		if s, ok := MetricSeries(imoveis, "Leads Gerados"); ok {
			view.Cards = append(view.Cards, Card{Label: "Leads Generated", Value: formatCount(s.Sum())})
		}
		if s, ok := MetricSeries(imoveis, "ROI"); ok {
			view.Cards = append(view.Cards, Card{Label: "Average ROI", Value: formatPct2(s.Mean())})
		}
		views = append(views, view)
	}

	// Digital billing campaign.
	if boleto := a.table("Campanha_Boleto_Digital"); boleto != nil {
		view := campaignView{Name: "Digital Billing"}
		if s, ok := MetricSeries(boleto, "Unidades"); ok {
			view.Cards = append(view.Cards, Card{Label: "Registered Units", Value: formatCount(s.Max())})
			view.Bars = seriesBars(s, formatCount)
		}
		if s, ok := MetricSeries(boleto, "Economia"); ok {
			view.Cards = append(view.Cards, Card{Label: "Total Savings", Value: formatMoney(s.Sum())})
		}
		if s, ok := MetricSeries(boleto, "% da base"); ok {
			view.Cards = append(view.Cards, Card{Label: "Current Base %", Value: formatPct2(s.Max() * 100)})
		}
		views = append(views, view)
	}

	// Insurance campaign.
	if seguros := a.table("Campanha_Multiseguros"); seguros != nil {
		view := campaignView{Name: "Insurance"}
		if s, ok := MetricSeries(seguros, "Investimento"); ok {
			view.Cards = append(view.Cards, Card{Label: "Investment", Value: formatMoney(s.Sum())})
		}
		leads, okL := MetricSeries(seguros, "Leads Gerados")
		if okL {
			view.Cards = append(view.Cards, Card{Label: "Leads", Value: formatCount(leads.Sum())})
		}
		converted, okC := MetricSeries(seguros, "Clientes Convertidos")
		if okC {
			view.Cards = append(view.Cards, Card{Label: "Conversions", Value: formatCount(converted.Sum())})
		}
		if s, ok := MetricSeries(seguros, "ROI"); ok {
			view.Cards = append(view.Cards, Card{Label: "Average ROI", Value: formatPct2(s.Mean())})
			view.Bars = seriesBars(s, formatPct2)
		}
		if okL && okC {
			view.Pairs = pairBars(leads, converted, formatCount)
		}
		views = append(views, view)
	}

	data := a.baseData("Campaign Management", "campaigns")
	data["Campaigns"] = views
	a.renderTemplate(w, "campaigns.html", data)
}

// handleComparativeAnalysis renders the cross-campaign comparison.
func (a *App) handleComparativeAnalysis(w http.ResponseWriter, r *http.Request) {
	imoveis := a.table("Campanha_Imoveis")
	seguros := a.table("Campanha_Multiseguros")

	data := a.baseData("Comparative Analysis", "comparative")

	invImoveis, okII := MetricSeries(imoveis, "Investimento")
	invSeguros, okIS := MetricSeries(seguros, "Investimento")
	if okII && okIS {
		data["Investment"] = pairBars(invImoveis, invSeguros, formatMoney0)
		data["InvestmentCards"] = []Card{
			{Label: "Real Estate Total", Value: formatMoney(invImoveis.Sum())},
			{Label: "Insurance Total", Value: formatMoney(invSeguros.Sum())},
		}
	}

	roiImoveis, okRI := MetricSeries(imoveis, "ROI")
	roiSeguros, okRS := MetricSeries(seguros, "ROI")
	if okRI && okRS {
		data["ROIPairs"] = pairBars(roiImoveis, roiSeguros, formatPct2)
		data["ROICards"] = []Card{
			{Label: "Real Estate Average", Value: formatPct2(roiImoveis.Mean()), Hint: "Trend " + trendArrow(roiImoveis.Trend())},
			{Label: "Insurance Average", Value: formatPct2(roiSeguros.Mean()), Hint: "Trend " + trendArrow(roiSeguros.Trend())},
		}
	}

	leadsImoveis, _ := MetricSeries(imoveis, "Leads Gerados")
	leadsSeguros, _ := MetricSeries(seguros, "Leads Gerados")
	convImoveis, _ := MetricSeries(imoveis, "Clientes Convertidos")
	convSeguros, _ := MetricSeries(seguros, "Clientes Convertidos")

	data["SummaryRows"] = [][]string{
		{"Total Investment", formatMoney(invImoveis.Sum()), formatMoney(invSeguros.Sum())},
		{"Leads Generated", formatCount(leadsImoveis.Sum()), formatCount(leadsSeguros.Sum())},
		{"Conversions", formatCount(convImoveis.Sum()), formatCount(convSeguros.Sum())},
		{"Average ROI", formatPct2(roiImoveis.Mean()), formatPct2(roiSeguros.Mean())},
		{"Cost per Lead", costPerLead(invImoveis, leadsImoveis), costPerLead(invSeguros, leadsSeguros)},
	}

	a.renderTemplate(w, "comparative.html", data)
}

func costPerLead(investment, leads Series) string {
	leadTotal := leads.Sum()
	invTotal := investment.Sum()
	if kpi.IsMissing(invTotal) || kpi.IsMissing(leadTotal) || leadTotal == 0 {
		return noValue
	}
	return formatMoney(invTotal / leadTotal)
}

// --- JSON API ---

type summaryJSON struct {
	Table       string  `json:"table"`
	NumMetrics  int     `json:"num_metrics"`
	NumMonths   int     `json:"num_months"`
	TotalCells  int     `json:"total_cells"`
	FilledCells int     `json:"filled_cells"`
	EmptyCells  int     `json:"empty_cells"`
	FillPct     float64 `json:"fill_pct"`
}

func (a *App) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	out := make([]summaryJSON, 0, len(a.data.Summaries))
	for _, s := range a.data.Summaries {
		out = append(out, summaryJSON{
			Table:       s.Table,
			NumMetrics:  s.NumMetrics,
			NumMonths:   s.NumMonths,
			TotalCells:  s.TotalCells,
			FilledCells: s.FilledCells,
			EmptyCells:  s.EmptyCells,
			FillPct:     s.FillPct,
		})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *App) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	t := a.table(chi.URLParam(r, "table"))
	if t == nil {
		a.writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"table":   t.Name,
		"metrics": t.Metrics,
		"months":  t.Months,
	})
}

func (a *App) handleSeriesJSON(w http.ResponseWriter, r *http.Request) {
	t := a.table(chi.URLParam(r, "table"))
	if t == nil {
		a.writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
		return
	}
	series, ok := MetricSeries(t, r.URL.Query().Get("metric"))
	if !ok {
		a.writeJSON(w, http.StatusNotFound, map[string]string{"error": "metric not found"})
		return
	}

	// NaN is not valid JSON; missing months become null.
	values := make([]*float64, len(series.Values))
	for i, v := range series.Values {
		if !kpi.IsMissing(v) {
			value := v
			values[i] = &value
		}
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"table":  t.Name,
		"metric": series.Metric,
		"months": series.Months,
		"values": values,
	})
}
