package out

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"topicmap/internal/modules/chart/domain"
	chartout "topicmap/internal/modules/chart/port/out"
	apperrors "topicmap/internal/platform/errors"
)

type PlotlyMode string

const (
	// PlotlyCDN loads plotly.js from a URL.
	PlotlyCDN PlotlyMode = "cdn"
	// PlotlyDirectory expects plotly.min.js next to the document.
	PlotlyDirectory PlotlyMode = "directory"

	DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	plotlyFileName   = "plotly.min.js"
	figureOpenTag    = `<script type="application/json" id="figure">`
	chartDivID       = "topicmap-chart"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>html, body { margin: 0; background: {{.Background}}; }</style>
<script src="{{.PlotlySrc}}"></script>
</head>
<body>
<div id="{{.DivID}}" style="width: 100%; height: {{.Height}}px;"></div>
<script type="application/json" id="figure">{{.Figure}}</script>
<script>
(function () {
  var figure = JSON.parse(document.getElementById("figure").textContent);
  Plotly.newPlot({{.DivID}}, figure.data, figure.layout, {responsive: true});
})();
</script>
</body>
</html>
`))

type documentView struct {
	Title      string
	Background string
	PlotlySrc  string
	DivID      string
	Height     int
	Figure     template.JS
}

type HTMLRenderer struct {
	mode      PlotlyMode
	plotlyURL string
	format    domain.Format
}

func NewHTMLRenderer(mode PlotlyMode, plotlyURL string) (*HTMLRenderer, error) {
	switch mode {
	case "":
		mode = PlotlyCDN
	case PlotlyCDN, PlotlyDirectory:
	default:
		return nil, fmt.Errorf("%w: plotly mode %q", apperrors.ErrInvalidInput, mode)
	}
	if strings.TrimSpace(plotlyURL) == "" {
		plotlyURL = DefaultPlotlyURL
	}
	return &HTMLRenderer{mode: mode, plotlyURL: plotlyURL, format: domain.FormatHTML}, nil
}

// AsFormat returns a copy registered under another format, used when the
// same document is produced on behalf of a plugin fallback.
func (r *HTMLRenderer) AsFormat(format domain.Format) chartout.Renderer {
	clone := *r
	clone.format = format
	return &clone
}

func (r *HTMLRenderer) Format() domain.Format {
	return r.format
}

func (r *HTMLRenderer) Render(ctx context.Context, fig domain.Figure, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(dest, func(w io.Writer) error {
		return r.WriteDocument(w, fig)
	})
}

// WriteDocument writes the standalone HTML page for fig. The output depends
// only on fig and the renderer settings.
func (r *HTMLRenderer) WriteDocument(w io.Writer, fig domain.Figure) error {
	raw, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	src := r.plotlyURL
	if r.mode == PlotlyDirectory {
		src = plotlyFileName
	}
	view := documentView{
		Title:      documentTitle(fig),
		Background: fig.Layout.PaperBGColor,
		PlotlySrc:  src,
		DivID:      chartDivID,
		Height:     fig.Layout.Height,
		Figure:     template.JS(raw),
	}
	if err := documentTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("execute document template: %w", err)
	}
	return nil
}

func documentTitle(fig domain.Figure) string {
	for _, a := range fig.Layout.Annotations {
		if t := strings.TrimSpace(a.Text); t != "" {
			return t
		}
	}
	return "topicmap"
}
