// Package charts builds the dashboard's two visuals: a Vega-Lite bar chart of
// feature importances rendered client side, and a confusion-matrix heatmap
// rendered server side as PNG.
package charts

import (
	"encoding/json"
	"fmt"

	"pharmarisk/internal/analysis"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Chart styling
const (
	ImportanceTitle  = "Quais Fatores Mais Determinam o Risco de Perda?"
	ImportanceHeight = 350
	BarColor         = "#00a68d"
	factorField      = "Fator de Risco"
	importanceField  = "Importância"
)

// VegaSpec is the subset of a Vega-Lite layered spec the dashboard emits
type VegaSpec struct {
	Schema string      `json:"$schema"`
	Title  string      `json:"title"`
	Width  string      `json:"width"`
	Height int         `json:"height"`
	Data   VegaData    `json:"data"`
	Layer  []VegaLayer `json:"layer"`
}

type VegaData struct {
	Values []analysis.FactorImportance `json:"values"`
}

type VegaLayer struct {
	Mark     VegaMark     `json:"mark"`
	Params   []VegaParam  `json:"params,omitempty"`
	Encoding VegaEncoding `json:"encoding"`
}

type VegaMark struct {
	Type     string `json:"type"`
	Align    string `json:"align,omitempty"`
	Baseline string `json:"baseline,omitempty"`
	Dx       int    `json:"dx,omitempty"`
}

// VegaParam with Bind "scales" makes the chart zoomable and pannable
type VegaParam struct {
	Name   string `json:"name"`
	Select string `json:"select"`
	Bind   string `json:"bind"`
}

type VegaEncoding struct {
	X       *VegaField  `json:"x,omitempty"`
	Y       *VegaField  `json:"y,omitempty"`
	Text    *VegaField  `json:"text,omitempty"`
	Color   *VegaValue  `json:"color,omitempty"`
	Tooltip []VegaField `json:"tooltip,omitempty"`
}

type VegaField struct {
	Field  string `json:"field"`
	Type   string `json:"type"`
	Title  string `json:"title,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Format string `json:"format,omitempty"`
}

type VegaValue struct {
	Value string `json:"value"`
}

// ImportanceChart lays a text layer over horizontal bars sorted by importance
func ImportanceChart(ranked []analysis.FactorImportance) (*VegaSpec, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("importance chart: no factors to plot")
	}

	y := &VegaField{Field: factorField, Type: "nominal", Sort: "-x", Title: factorField}
	x := &VegaField{Field: importanceField, Type: "quantitative", Title: "Nível de Importância para o Modelo"}

	bars := VegaLayer{
		Mark:   VegaMark{Type: "bar"},
		Params: []VegaParam{{Name: "zoom", Select: "interval", Bind: "scales"}},
		Encoding: VegaEncoding{
			X:     x,
			Y:     y,
			Color: &VegaValue{Value: BarColor},
			Tooltip: []VegaField{
				{Field: factorField, Type: "nominal"},
				{Field: importanceField, Type: "quantitative", Format: ".2f"},
			},
		},
	}
	labels := VegaLayer{
		Mark: VegaMark{Type: "text", Align: "left", Baseline: "middle", Dx: 3},
		Encoding: VegaEncoding{
			X:     x,
			Y:     y,
			Text:  &VegaField{Field: importanceField, Type: "quantitative", Format: ".2f"},
			Color: &VegaValue{Value: "black"},
		},
	}

	return &VegaSpec{
		Schema: vegaLiteSchema,
		Title:  ImportanceTitle,
		Width:  "container",
		Height: ImportanceHeight,
		Data:   VegaData{Values: ranked},
		Layer:  []VegaLayer{bars, labels},
	}, nil
}

// JSON encodes the spec for vega-embed
func (s *VegaSpec) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode vega spec: %w", err)
	}
	return string(b), nil
}
