package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Figure is the renderer-neutral chart document. Field names and JSON keys
// follow plotly's figure schema so the HTML renderer can hand it over as is.
type Figure struct {
	Data   []Trace `json:"data" yaml:"data"`
	Layout Layout  `json:"layout" yaml:"layout"`
}

type Trace struct {
	Type      string   `json:"type" yaml:"type"`
	Mode      string   `json:"mode" yaml:"mode"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	X         Values   `json:"x" yaml:"x"`
	Y         Values   `json:"y" yaml:"y"`
	HoverText []string `json:"hovertext,omitempty" yaml:"hovertext,omitempty"`
	HoverInfo string   `json:"hoverinfo,omitempty" yaml:"hoverinfo,omitempty"`
	Marker    Marker   `json:"marker" yaml:"marker"`
	Meta      *Meta    `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Meta carries values that are not plotly styling but that other renderers
// need to reproduce the chart.
type Meta struct {
	Role       string `json:"role" yaml:"role"`
	TopicCodes []int  `json:"topic_codes,omitempty" yaml:"topic_codes,omitempty"`
}

const (
	RoleLegend = "legend"
	RolePoints = "points"
)

type Marker struct {
	Size       int        `json:"size,omitempty" yaml:"size,omitempty"`
	Opacity    float64    `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Color      []string   `json:"color,omitempty" yaml:"color,omitempty"`
	ShowScale  bool       `json:"showscale,omitempty" yaml:"showscale,omitempty"`
	Colorscale Colorscale `json:"colorscale,omitempty" yaml:"colorscale,omitempty"`
	CMin       *float64   `json:"cmin,omitempty" yaml:"cmin,omitempty"`
	CMax       *float64   `json:"cmax,omitempty" yaml:"cmax,omitempty"`
	ColorBar   *ColorBar  `json:"colorbar,omitempty" yaml:"colorbar,omitempty"`
}

type ColorBar struct {
	Title    string    `json:"title" yaml:"title"`
	TickVals []float64 `json:"tickvals" yaml:"tickvals"`
	TickText []string  `json:"ticktext" yaml:"ticktext"`
}

type Layout struct {
	Height       int          `json:"height" yaml:"height"`
	Margin       Margin       `json:"margin" yaml:"margin"`
	Font         Font         `json:"font" yaml:"font"`
	PaperBGColor string       `json:"paper_bgcolor" yaml:"paper_bgcolor"`
	ShowLegend   bool         `json:"showlegend" yaml:"showlegend"`
	Annotations  []Annotation `json:"annotations" yaml:"annotations"`
	UpdateMenus  []UpdateMenu `json:"updatemenus" yaml:"updatemenus"`
}

type Margin struct {
	T int `json:"t" yaml:"t"`
	B int `json:"b" yaml:"b"`
	L int `json:"l" yaml:"l"`
	R int `json:"r" yaml:"r"`
}

type Font struct {
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Size  int    `json:"size" yaml:"size"`
}

type Annotation struct {
	Text      string  `json:"text" yaml:"text"`
	Font      Font    `json:"font" yaml:"font"`
	BorderPad int     `json:"borderpad" yaml:"borderpad"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	XRef      string  `json:"xref" yaml:"xref"`
	YRef      string  `json:"yref" yaml:"yref"`
	Align     string  `json:"align" yaml:"align"`
	ShowArrow bool    `json:"showarrow" yaml:"showarrow"`
	BGColor   string  `json:"bgcolor" yaml:"bgcolor"`
}

type UpdateMenu struct {
	Buttons     []Button `json:"buttons" yaml:"buttons"`
	Direction   string   `json:"direction" yaml:"direction"`
	X           float64  `json:"x" yaml:"x"`
	XAnchor     string   `json:"xanchor" yaml:"xanchor"`
	Y           float64  `json:"y" yaml:"y"`
	YAnchor     string   `json:"yanchor" yaml:"yanchor"`
	BGColor     string   `json:"bgcolor" yaml:"bgcolor"`
	BorderColor string   `json:"bordercolor" yaml:"bordercolor"`
	Font        Font     `json:"font" yaml:"font"`
}

type Button struct {
	Label  string             `json:"label" yaml:"label"`
	Method string             `json:"method" yaml:"method"`
	Args   []VisibilityUpdate `json:"args" yaml:"args"`
}

type VisibilityUpdate struct {
	Visible []bool `json:"visible" yaml:"visible"`
}

// Values is a coordinate array where NaN stands for a missing value and is
// encoded as null.
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	raw := make([]*float64, len(v))
	for i := range v {
		if math.IsNaN(v[i]) {
			continue
		}
		raw[i] = &v[i]
	}
	return json.Marshal(raw)
}

func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	out := make(Values, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *p
	}
	*v = out
	return nil
}

func (v Values) MarshalYAML() (any, error) {
	out := make([]any, len(v))
	for i, f := range v {
		if math.IsNaN(f) {
			continue
		}
		out[i] = f
	}
	return out, nil
}

// PointLayers returns the traces that hold data points, in layer order.
func (f Figure) PointLayers() []Trace {
	out := make([]Trace, 0, len(f.Data))
	for _, t := range f.Data {
		if t.Meta != nil && t.Meta.Role == RoleLegend {
			continue
		}
		out = append(out, t)
	}
	return out
}

// LegendLayers returns the traces that only host a colorbar.
func (f Figure) LegendLayers() []Trace {
	out := make([]Trace, 0, 1)
	for _, t := range f.Data {
		if t.Marker.ColorBar != nil && t.Marker.ShowScale {
			out = append(out, t)
		}
	}
	return out
}
