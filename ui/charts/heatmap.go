package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// viridis anchor colours, evenly spaced over [0, 1]
var viridisStops = []colorful.Color{
	mustHex("#440154"),
	mustHex("#3b528b"),
	mustHex("#21918c"),
	mustHex("#5ec962"),
	mustHex("#fde725"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Viridis maps t in [0, 1] onto the viridis colour ramp. Values outside the
// range are clamped.
func Viridis(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return viridisStops[0]
	}
	if t >= 1 {
		return viridisStops[len(viridisStops)-1]
	}
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	frac := pos - float64(i)
	if frac == 0 {
		return viridisStops[i]
	}
	return viridisStops[i].BlendLab(viridisStops[i+1], frac).Clamped()
}

// HeatmapOptions sizes and labels a heatmap
type HeatmapOptions struct {
	Title     string
	RowLabels []string
	ColLabels []string
	Width     int
	Height    int
}

// ConfusionHeatmapOptions matches a 6x5 inch figure at 100 dpi
func ConfusionHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Title:     "Matriz de Confusão",
		RowLabels: []string{"Real Baixo Risco", "Real Alto Risco"},
		ColLabels: []string{"Previsto Baixo Risco", "Previsto Alto Risco"},
		Width:     600,
		Height:    500,
	}
}

const (
	heatmapMarginLeft   = 140
	heatmapMarginTop    = 50
	heatmapMarginRight  = 20
	heatmapMarginBottom = 50
)

// RenderHeatmapPNG draws an annotated heatmap of counts, normalising colours
// between the smallest and largest cell.
func RenderHeatmapPNG(counts [][]int, opts HeatmapOptions) ([]byte, error) {
	rows := len(counts)
	if rows == 0 || len(counts[0]) == 0 {
		return nil, fmt.Errorf("heatmap: empty matrix")
	}
	cols := len(counts[0])
	for i, row := range counts {
		if len(row) != cols {
			return nil, fmt.Errorf("heatmap: row %d has %d cells, want %d", i, len(row), cols)
		}
	}
	if len(opts.RowLabels) != rows || len(opts.ColLabels) != cols {
		return nil, fmt.Errorf("heatmap: %dx%d labels for %dx%d matrix", len(opts.RowLabels), len(opts.ColLabels), rows, cols)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("heatmap: load font: %w", err)
	}
	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("heatmap: create renderer: %w", err)
	}

	plotW := opts.Width - heatmapMarginLeft - heatmapMarginRight
	plotH := opts.Height - heatmapMarginTop - heatmapMarginBottom
	cellW, cellH := plotW/cols, plotH/rows

	lo, hi := bounds(counts)
	for i, row := range counts {
		for j, v := range row {
			x0 := heatmapMarginLeft + j*cellW
			y0 := heatmapMarginTop + i*cellH
			fill := Viridis(normalise(float64(v), lo, hi))

			r.SetFillColor(toDrawing(fill))
			r.MoveTo(x0, y0)
			r.LineTo(x0+cellW, y0)
			r.LineTo(x0+cellW, y0+cellH)
			r.LineTo(x0, y0+cellH)
			r.Close()
			r.Fill()

			drawCentered(r, font, 16, annotationColor(fill), fmt.Sprintf("%d", v), x0+cellW/2, y0+cellH/2)
		}
	}

	for i, label := range opts.RowLabels {
		text := label
		y := heatmapMarginTop + i*cellH + cellH/2
		setFont(r, font, 11, drawing.ColorBlack)
		box := r.MeasureText(text)
		r.Text(text, heatmapMarginLeft-box.Width()-8, y+box.Height()/2)
	}
	for j, label := range opts.ColLabels {
		x := heatmapMarginLeft + j*cellW + cellW/2
		drawCentered(r, font, 11, drawing.ColorBlack, label, x, heatmapMarginTop+plotH+heatmapMarginBottom/2)
	}
	drawCentered(r, font, 14, drawing.ColorBlack, opts.Title, heatmapMarginLeft+plotW/2, heatmapMarginTop/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("heatmap: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func bounds(counts [][]int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range counts {
		for _, v := range row {
			lo = math.Min(lo, float64(v))
			hi = math.Max(hi, float64(v))
		}
	}
	return lo, hi
}

func normalise(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// annotationColor picks black text on light cells and white on dark ones
func annotationColor(fill colorful.Color) drawing.Color {
	l, _, _ := fill.Lab()
	if l > 0.6 {
		return drawing.ColorBlack
	}
	return drawing.ColorWhite
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func setFont(r chart.Renderer, font *truetype.Font, size float64, color drawing.Color) {
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(color)
}

func drawCentered(r chart.Renderer, font *truetype.Font, size float64, color drawing.Color, text string, cx, cy int) {
	setFont(r, font, size, color)
	box := r.MeasureText(text)
	r.Text(text, cx-box.Width()/2, cy+box.Height()/2)
}
