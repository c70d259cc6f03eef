package ui

import (
	"encoding/base64"
	"fmt"
	"html/template"

	"pharmarisk/app"
	"pharmarisk/domain/inventory"
	"pharmarisk/internal/analysis"
	"pharmarisk/internal/format"
)

const pageTitle = "Gestão de Risco de Vencimento (ML)"

// MetricCard is one executive metric tile
type MetricCard struct {
	Label   string
	Value   string
	Delta   string
	Inverse bool
}

// SliderView describes one sidebar input
type SliderView struct {
	Name   string
	Label  string
	Value  int
	Bounds inventory.Bounds
}

// PredictionView is the sidebar result block
type PredictionView struct {
	High        bool
	Headline    string
	Probability template.HTML
	Action      string
	Details     template.HTML
}

// ReportCell is one formatted classification-report value
type ReportCell struct {
	Text string
	Max  bool
}

// ReportRowView is one classification-report line
type ReportRowView struct {
	Label string
	Cells []ReportCell
}

// PageView is the data the index template renders
type PageView struct {
	Title       string
	Seed        int64
	ModelKind   string
	Fingerprint string

	Sliders      []SliderView
	Prediction   *PredictionView
	PredictError string

	Intro          template.HTML
	SidebarIntro   template.HTML
	ImportanceNote template.HTML
	FalseNegatives template.HTML
	RecallNote     template.HTML
	Footer         template.HTML

	Metrics []MetricCard

	ImportanceSpec string
	ChartError     string

	HeatmapURI   template.URL
	HeatmapError string

	ReportColumns []string
	ReportRows    []ReportRowView
}

func newPageView(d *app.Dashboard, input inventory.LotInput) *PageView {
	view := &PageView{
		Title:          pageTitle,
		Seed:           d.Seed,
		ModelKind:      d.ModelKind,
		Sliders:        sliders(input),
		Intro:          renderMarkdown(mdIntro),
		SidebarIntro:   renderMarkdown(mdSidebarIntro),
		ImportanceNote: renderMarkdown(mdImportanceNote),
		RecallNote:     renderMarkdown(mdRecallNote),
		Footer:         renderMarkdown(mdFooter),
		Metrics:        metricCards(d.Metrics),
		ImportanceSpec: d.ImportanceSpec,
		ChartError:     d.ChartError,
		HeatmapError:   d.HeatmapError,
		ReportColumns:  analysis.ReportColumns,
		ReportRows:     reportRows(d.Report),
	}
	if d.Manifest != nil {
		view.Fingerprint = d.Manifest.ShortFingerprint()
	}
	if d.Confusion != nil {
		view.FalseNegatives = renderMarkdown(fmt.Sprintf("- **Falsos Negativos (Risco Perdido):** %d", d.Confusion.FalseNegatives()))
	}
	if len(d.HeatmapPNG) > 0 {
		view.HeatmapURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(d.HeatmapPNG))
	}
	return view
}

func sliders(input inventory.LotInput) []SliderView {
	return []SliderView{
		{Name: "stock", Label: "Estoque Atual (Unidades)", Value: input.Stock, Bounds: inventory.StockBounds},
		{Name: "days", Label: "Dias Até o Vencimento", Value: input.DaysToExpiry, Bounds: inventory.DaysBounds},
		{Name: "rate", Label: "Venda Média Diária (Unidades/Dia)", Value: input.DailySaleRate, Bounds: inventory.RateBounds},
	}
}

func metricCards(m analysis.ExecutiveMetrics) []MetricCard {
	return []MetricCard{
		{
			Label: "Total de Lotes Monitorados",
			Value: format.Integer(m.TotalLots),
			Delta: "Visão completa",
		},
		{
			Label:   "Lotes Atualmente em ALTO RISCO",
			Value:   format.Integer(m.HighRiskLots),
			Delta:   fmt.Sprintf("%.1f%% do total", m.HighRiskShare),
			Inverse: true,
		},
		{
			Label:   "Valor Financeiro TOTAL em Risco",
			Value:   format.Currency(m.ValueAtRisk),
			Delta:   fmt.Sprintf("Média de %.0f dias até o vencimento", m.MeanDaysAtRisk),
			Inverse: true,
		},
	}
}

func reportRows(r analysis.ClassificationReport) []ReportRowView {
	maxima := r.ColumnMaxima()
	rows := make([]ReportRowView, len(r.Rows))
	for i, row := range r.Rows {
		values := row.Values()
		cells := make([]ReportCell, len(values))
		for j, v := range values {
			cells[j] = ReportCell{Text: fmt.Sprintf("%.4f", v), Max: v == maxima[j]}
		}
		rows[i] = ReportRowView{Label: row.Label, Cells: cells}
	}
	return rows
}

func newPredictionView(p *app.LotPrediction) *PredictionView {
	details := fmt.Sprintf("- **Estoque Suficiente para:** `%s` dias\n- **Tempo restante:** `%d` dias",
		p.CoverageDisplay(), p.Input.DaysToExpiry)
	return &PredictionView{
		High:        p.HighRisk(),
		Headline:    p.Headline(),
		Probability: renderMarkdown(fmt.Sprintf("**Probabilidade:** `%s` %s.", p.ProbabilityPercent(), p.ConfidenceNote())),
		Action:      p.Action(),
		Details:     renderMarkdown(details),
	}
}
