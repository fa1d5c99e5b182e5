package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"kpiboard/domain/kpi"
)

// Series is one metric's monthly values. Missing observations stay in
// place as NaN so months keep their alignment.
type Series struct {
	Metric string
	Months []string
	Values []float64
}

// MetricSeries finds the first metric whose name contains needle
// (case-insensitive) and returns its monthly series.
func MetricSeries(t *kpi.Table, needle string) (Series, bool) {
	if t == nil {
		return Series{}, false
	}
	lower := strings.ToLower(needle)
	for i, metric := range t.Metrics {
		if strings.Contains(strings.ToLower(metric), lower) {
			return Series{Metric: metric, Months: t.Months, Values: t.Values[i]}, true
		}
	}
	return Series{}, false
}

// Observed returns the non-missing values in month order.
func (s Series) Observed() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !kpi.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count is the number of observed (non-missing) months.
func (s Series) Count() int {
	return len(s.Observed())
}

func (s Series) Mean() float64 { return observedStat(s, stats.Mean) }
func (s Series) Sum() float64  { return observedStat(s, stats.Sum) }
func (s Series) Min() float64  { return observedStat(s, stats.Min) }
func (s Series) Max() float64  { return observedStat(s, stats.Max) }

func observedStat(s Series, fn func(stats.Float64Data) (float64, error)) float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return kpi.Missing()
	}
	v, err := fn(obs)
	if err != nil {
		return kpi.Missing()
	}
	return v
}

// Trend fits a least-squares line through the observed months and returns
// its slope: value change per month. Zero with fewer than two points.
func (s Series) Trend() float64 {
	var xs, ys []float64
	for i, v := range s.Values {
		if kpi.IsMissing(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

// PositiveMonths counts observed values strictly above threshold.
func (s Series) PositiveMonths(threshold float64) int {
	n := 0
	for _, v := range s.Observed() {
		if v > threshold {
			n++
		}
	}
	return n
}

// OriginTotal is a lead origin with its total across the year.
type OriginTotal struct {
	Origin string
	Total  float64
}

// ProposalsByOrigin aggregates the "Origem da proposta enviada" rows of the
// leads table into one total per origin, dropping origins that never sent
// a proposal.
func ProposalsByOrigin(t *kpi.Table) []OriginTotal {
	if t == nil {
		return nil
	}
	var out []OriginTotal
	for i, metric := range t.Metrics {
		if !strings.Contains(strings.ToLower(metric), "proposta enviada") {
			continue
		}
		total := rowSum(t.Values[i])
		if total <= 0 {
			continue
		}
		origin := strings.TrimSpace(strings.ReplaceAll(metric, "Origem da proposta enviada", ""))
		origin = strings.Trim(origin, " -")
		out = append(out, OriginTotal{Origin: origin, Total: total})
	}
	return out
}

// ConversionRow is one lead source with proposal and conversion totals.
type ConversionRow struct {
	Source      string
	Proposals   int
	Conversions int
	Rate        float64
}

// conversionOrigins pairs each converted-lead label with the needle used
// to find its proposal row. The two row families spell origins differently
// in the source workbook.
var conversionOrigins = []struct {
	Source         string
	ProposalNeedle string
}{
	{"Indicação", "Indica"},
	{"Capt. Ativa", "Capt. Ativa"},
	{"Capt. Receptiva", "Contato Receptivo"},
	{"Construtora", "Construtora"},
	{"Reativação", "Reativa"},
	{"Ads", "Ads"},
	{"Mala Direta", "Mala Direta"},
}

// ConversionRates matches proposal rows with converted-lead rows per
// origin and computes the conversion percentage, sorted best-first.
func ConversionRates(t *kpi.Table) []ConversionRow {
	if t == nil {
		return nil
	}
	var out []ConversionRow
	for _, origin := range conversionOrigins {
		proposals, okP := rowTotal(t, func(m string) bool {
			return strings.Contains(strings.ToLower(m), "proposta enviada") &&
				strings.Contains(strings.ToLower(m), strings.ToLower(origin.ProposalNeedle))
		})
		conversions, okC := rowTotal(t, func(m string) bool {
			return strings.Contains(strings.ToLower(m), "lead convertido") &&
				strings.Contains(strings.ToLower(m), strings.ToLower(origin.Source))
		})
		if !okP || !okC {
			continue
		}
		rate := 0.0
		if proposals > 0 {
			rate = math.Round(conversions/proposals*100*100) / 100
		}
		out = append(out, ConversionRow{
			Source:      origin.Source,
			Proposals:   int(proposals),
			Conversions: int(conversions),
			Rate:        rate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	return out
}

func rowTotal(t *kpi.Table, match func(string) bool) (float64, bool) {
	for i, metric := range t.Metrics {
		if match(metric) {
			return rowSum(t.Values[i]), true
		}
	}
	return 0, false
}

func rowSum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		if !kpi.IsMissing(v) {
			sum += v
		}
	}
	return sum
}
