package service

import (
	"fmt"
	"math"

	"topicmap/internal/modules/chart/domain"
)

const (
	traceScatter = "scatter"
	modePoints   = "markers+text"
	modeAnchor   = "markers"
)

// ChartAssembler turns points into a figure: the colorbar anchor first, then
// one layer per category, then a static layout with the category dropdown.
type ChartAssembler struct {
	style domain.Style
}

func NewChartAssembler(style domain.Style) ChartAssembler {
	return ChartAssembler{style: style}
}

func (a ChartAssembler) Assemble(points []domain.Point, topics domain.TopicAssignment) (domain.Figure, error) {
	palette, err := domain.NewTopicPalette(topics)
	if err != nil {
		return domain.Figure{}, err
	}
	legend, err := a.legendLayer(palette)
	if err != nil {
		return domain.Figure{}, err
	}
	categories := domain.Categories(points)
	byCategory := make(map[string][]domain.Point, len(categories))
	for _, p := range points {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	data := make([]domain.Trace, 0, len(categories)+1)
	data = append(data, legend)
	for _, category := range categories {
		layer, err := a.pointLayer(category, byCategory[category], palette)
		if err != nil {
			return domain.Figure{}, err
		}
		data = append(data, layer)
	}
	return domain.Figure{Data: data, Layout: a.layout(categories)}, nil
}

func (a ChartAssembler) pointLayer(category string, points []domain.Point, palette domain.TopicPalette) (domain.Trace, error) {
	xs := make(domain.Values, len(points))
	ys := make(domain.Values, len(points))
	colors := make([]string, len(points))
	hover := make([]string, len(points))
	for i, p := range points {
		color, err := palette.Color(p.TopicCode)
		if err != nil {
			return domain.Trace{}, fmt.Errorf("color point %d of %s: %w", i+1, category, err)
		}
		xs[i], ys[i] = p.X, p.Y
		colors[i] = color
		hover[i] = domain.NewHoverLabel(p.TopicLabel, p.Keywords, p.Description, a.style.WrapWidth).Join(domain.LineBreak)
	}
	return domain.Trace{
		Type:      traceScatter,
		Mode:      modePoints,
		Name:      category,
		X:         xs,
		Y:         ys,
		HoverText: hover,
		Marker: domain.Marker{
			Size:    a.style.MarkerSize,
			Opacity: a.style.MarkerOpacity,
			Color:   colors,
		},
		Meta: &domain.Meta{Role: domain.RolePoints},
	}, nil
}

// legendLayer is a single invisible point whose only job is to carry the
// discrete colorbar, one tick per topic centered in its band.
func (a ChartAssembler) legendLayer(palette domain.TopicPalette) (domain.Trace, error) {
	codes := palette.Codes()
	n := len(codes)
	scale, err := domain.DiscreteColorscale(domain.Linspace(0, 1, n+1), palette.Colors())
	if err != nil {
		return domain.Trace{}, fmt.Errorf("build legend colorscale: %w", err)
	}
	tickVals := make([]float64, n)
	tickText := make([]string, n)
	for i, code := range codes {
		tickVals[i] = float64(i + 1)
		tickText[i] = domain.TopicTick(code)
	}
	cmin, cmax := 0.5, float64(n)+0.5
	return domain.Trace{
		Type:      traceScatter,
		Mode:      modeAnchor,
		X:         domain.Values{math.NaN()},
		Y:         domain.Values{math.NaN()},
		HoverInfo: "none",
		Marker: domain.Marker{
			ShowScale:  true,
			Colorscale: scale,
			CMin:       &cmin,
			CMax:       &cmax,
			ColorBar: &domain.ColorBar{
				Title:    a.style.LegendTitle,
				TickVals: tickVals,
				TickText: tickText,
			},
		},
		Meta: &domain.Meta{Role: domain.RoleLegend, TopicCodes: codes},
	}, nil
}

func (a ChartAssembler) layout(categories []string) domain.Layout {
	specs := domain.ButtonSet(categories)
	buttons := make([]domain.Button, 0, len(specs))
	for _, spec := range specs {
		buttons = append(buttons, domain.Button{
			Label:  spec.Label,
			Method: "update",
			Args:   []domain.VisibilityUpdate{{Visible: spec.Visible}},
		})
	}
	return domain.Layout{
		Height:       a.style.Height,
		Margin:       domain.Margin{},
		Font:         domain.Font{Color: a.style.FontColor, Size: a.style.FontSize},
		PaperBGColor: a.style.Background,
		ShowLegend:   false,
		Annotations: []domain.Annotation{{
			Text:      a.style.Title,
			Font:      domain.Font{Color: a.style.FontColor, Size: a.style.TitleFontSize},
			BorderPad: 10,
			X:         0.05,
			Y:         0.05,
			XRef:      "paper",
			YRef:      "paper",
			Align:     "left",
			ShowArrow: false,
			BGColor:   "black",
		}},
		UpdateMenus: []domain.UpdateMenu{{
			Buttons:     buttons,
			Direction:   "down",
			X:           0.01,
			XAnchor:     "left",
			Y:           0.99,
			YAnchor:     "bottom",
			BGColor:     a.style.Background,
			BorderColor: a.style.FontColor,
			Font:        domain.Font{Size: a.style.FontSize},
		}},
	}
}
