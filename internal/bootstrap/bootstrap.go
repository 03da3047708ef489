package bootstrap

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	chartinadapter "topicmap/internal/modules/chart/adapter/in"
	chartoutadapter "topicmap/internal/modules/chart/adapter/out"
	chartdomain "topicmap/internal/modules/chart/domain"
	chartout "topicmap/internal/modules/chart/port/out"
	chartservice "topicmap/internal/modules/chart/service"
	chartusecase "topicmap/internal/modules/chart/usecase"
	datasetinadapter "topicmap/internal/modules/dataset/adapter/in"
	datasetoutadapter "topicmap/internal/modules/dataset/adapter/out"
	datasetdomain "topicmap/internal/modules/dataset/domain"
	datasetservice "topicmap/internal/modules/dataset/service"
	datasetusecase "topicmap/internal/modules/dataset/usecase"
	"topicmap/internal/platform/clock"
	"topicmap/internal/platform/config"
	"topicmap/internal/platform/id"
	"topicmap/internal/platform/logging"
	uiapp "topicmap/internal/ui/app"
)

type App struct {
	Config     config.Config
	Log        logging.Logger
	DatasetCLI datasetinadapter.CLIHandler
	ChartCLI   chartinadapter.CLIHandler
}

func New(cfg config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	datasetSvc := datasetservice.NewDatasetService(
		datasetoutadapter.NewDefaultRouter(),
		schemaFrom(cfg.Dataset.Columns),
		log.With(logging.String("module", "dataset")),
	)
	datasetUC := datasetusecase.NewInteractor(datasetSvc)

	renderers, err := newRenderers(cfg, log)
	if err != nil {
		return nil, err
	}
	var publisher chartout.Publisher
	if cfg.Publish.Enabled() {
		minioPublisher, err := chartoutadapter.NewMinioPublisher(chartoutadapter.PublisherConfig{
			Endpoint:  cfg.Publish.Endpoint,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			Bucket:    cfg.Publish.Bucket,
			Prefix:    cfg.Publish.Prefix,
			UseSSL:    cfg.Publish.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("new publisher: %w", err)
		}
		publisher = minioPublisher
	}
	chartSvc := chartservice.NewChartService(
		chartservice.NewChartAssembler(styleFrom(cfg.Chart)),
		renderers,
		publisher,
		chartoutadapter.NewPromMetrics(cfg.Metrics.Textfile),
		clk,
		ids,
		log.With(logging.String("module", "chart")),
	)
	chartUC := chartusecase.NewInteractor(
		chartSvc,
		datasetUC,
		chartoutadapter.NewFigureReader(),
		chartdomain.Format(cfg.Render.Format),
	)

	return &App{
		Config:     cfg,
		Log:        log,
		DatasetCLI: datasetinadapter.NewCLIHandler(datasetUC),
		ChartCLI:   chartinadapter.NewCLIHandler(chartUC),
	}, nil
}

func newRenderers(cfg config.Config, log logging.Logger) ([]chartout.Renderer, error) {
	html, err := chartoutadapter.NewHTMLRenderer(chartoutadapter.PlotlyMode(cfg.Render.PlotlyMode), cfg.Render.PlotlyURL)
	if err != nil {
		return nil, fmt.Errorf("new html renderer: %w", err)
	}
	renderers := []chartout.Renderer{html}
	for _, format := range []chartdomain.Format{chartdomain.FormatJSON, chartdomain.FormatYAML} {
		spec, err := chartoutadapter.NewSpecWriter(format)
		if err != nil {
			return nil, fmt.Errorf("new spec writer: %w", err)
		}
		renderers = append(renderers, spec)
	}
	for _, format := range []chartdomain.Format{chartdomain.FormatPNG, chartdomain.FormatSVG} {
		snapshot, err := chartoutadapter.NewSnapshotRenderer(format, cfg.Render.SnapshotWidth, cfg.Render.SnapshotHeight)
		if err != nil {
			return nil, fmt.Errorf("new snapshot renderer: %w", err)
		}
		renderers = append(renderers, snapshot)
	}
	if cfg.Render.PluginPath == "" {
		// Without a plugin binary the plugin format, whether configured as
		// render.format or passed as --format, falls back to the built-in
		// document.
		renderers = append(renderers, html.AsFormat(chartdomain.FormatPlugin))
		return renderers, nil
	}
	var pluginLog io.Writer
	if cfg.Log.Level == "debug" {
		pluginLog = os.Stderr
	}
	log.Debug("plugin renderer enabled", logging.String("path", cfg.Render.PluginPath))
	return append(renderers, chartoutadapter.NewPluginRenderer(cfg.Render.PluginPath, pluginLog).WithChecksum(cfg.Render.PluginSHA256)), nil
}

func schemaFrom(cols config.ColumnsConfig) datasetdomain.Schema {
	schema := datasetdomain.DefaultSchema()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&schema.Category, cols.Category)
	set(&schema.X, cols.X)
	set(&schema.Y, cols.Y)
	set(&schema.Description, cols.Description)
	set(&schema.TopicLabel, cols.TopicLabel)
	set(&schema.Keywords, cols.Keywords)
	set(&schema.TopicCode, cols.TopicCode)
	return schema
}

func styleFrom(c config.ChartConfig) chartdomain.Style {
	return chartdomain.Style{
		Title:         c.Title,
		Height:        c.Height,
		FontColor:     c.FontColor,
		Background:    c.Background,
		FontSize:      c.FontSize,
		TitleFontSize: c.TitleFontSize,
		MarkerSize:    c.MarkerSize,
		MarkerOpacity: c.MarkerOpacity,
		WrapWidth:     c.WrapWidth,
		LegendTitle:   c.LegendTitle,
	}
}

func RunTUI(app *App, params uiapp.Params) error {
	model := uiapp.NewModel(app.DatasetCLI, app.ChartCLI, params)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
