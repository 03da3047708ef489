package out

import (
	"context"
	"fmt"
	"io"
	"math"

	"topicmap/internal/modules/chart/domain"
	apperrors "topicmap/internal/platform/errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const snapshotDotWidth = 4

// SnapshotRenderer draws the point layers as a static image. Interactive
// parts of the figure (dropdown, hover text) have no static equivalent and
// are dropped.
type SnapshotRenderer struct {
	format domain.Format
	width  int
	height int
}

func NewSnapshotRenderer(format domain.Format, width, height int) (*SnapshotRenderer, error) {
	if format != domain.FormatPNG && format != domain.FormatSVG {
		return nil, fmt.Errorf("%w: snapshot format %q", apperrors.ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: snapshot size %dx%d", apperrors.ErrInvalidInput, width, height)
	}
	return &SnapshotRenderer{format: format, width: width, height: height}, nil
}

func (r *SnapshotRenderer) Format() domain.Format {
	return r.format
}

func (r *SnapshotRenderer) Render(ctx context.Context, fig domain.Figure, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch, err := r.chart(fig)
	if err != nil {
		return err
	}
	provider := chart.PNG
	if r.format == domain.FormatSVG {
		provider = chart.SVG
	}
	return writeAtomic(dest, func(w io.Writer) error {
		if err := ch.Render(provider, w); err != nil {
			return fmt.Errorf("draw snapshot: %w", err)
		}
		return nil
	})
}

func (r *SnapshotRenderer) chart(fig domain.Figure) (chart.Chart, error) {
	fg := hexColor(fig.Layout.Font.Color, drawing.ColorWhite)
	bg := hexColor(fig.Layout.PaperBGColor, drawing.ColorBlack)

	xr, yr := bounds{lo: math.Inf(1), hi: math.Inf(-1)}, bounds{lo: math.Inf(1), hi: math.Inf(-1)}
	series := make([]chart.Series, 0, len(fig.Data))
	for _, layer := range fig.PointLayers() {
		xs, ys, colors := finitePoints(layer)
		if len(xs) == 0 {
			continue
		}
		for i := range xs {
			xr.add(xs[i])
			yr.add(ys[i])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    layer.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    snapshotDotWidth,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return colors[index]
				},
			},
		})
	}
	if len(series) == 0 {
		return chart.Chart{}, fmt.Errorf("%w: figure has no points to draw", apperrors.ErrInvalidInput)
	}
	axisStyle := chart.Style{FontColor: fg, StrokeColor: fg}
	return chart.Chart{
		Title:      documentTitle(fig),
		TitleStyle: chart.Style{FontColor: fg},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{FillColor: bg, Padding: chart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16}},
		Canvas:     chart.Style{FillColor: bg},
		XAxis:      chart.XAxis{Style: axisStyle, Range: xr.rangeOf()},
		YAxis:      chart.YAxis{Style: axisStyle, Range: yr.rangeOf()},
		Series:     series,
	}, nil
}

func finitePoints(layer domain.Trace) ([]float64, []float64, []drawing.Color) {
	n := min(len(layer.X), len(layer.Y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	colors := make([]drawing.Color, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(layer.X[i]) || math.IsNaN(layer.Y[i]) {
			continue
		}
		xs = append(xs, layer.X[i])
		ys = append(ys, layer.Y[i])
		c := drawing.ColorWhite
		if i < len(layer.Marker.Color) {
			c = hexColor(layer.Marker.Color[i], c)
		}
		colors = append(colors, c)
	}
	return xs, ys, colors
}

type bounds struct {
	lo, hi float64
}

func (b *bounds) add(v float64) {
	b.lo = math.Min(b.lo, v)
	b.hi = math.Max(b.hi, v)
}

// rangeOf pads the range by 5% so edge points are not clipped, and widens a
// degenerate range so a single point still has an axis.
func (b bounds) rangeOf() *chart.ContinuousRange {
	lo, hi := b.lo, b.hi
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func hexColor(raw string, fallback drawing.Color) drawing.Color {
	if len(raw) != 7 || raw[0] != '#' {
		return fallback
	}
	return drawing.ColorFromHex(raw[1:])
}
