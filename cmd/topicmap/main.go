package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"topicmap/internal/bootstrap"
	chartdomain "topicmap/internal/modules/chart/domain"
	chartdto "topicmap/internal/modules/chart/dto"
	"topicmap/internal/platform/config"
	"topicmap/internal/platform/logging"
	uiapp "topicmap/internal/ui/app"
	"topicmap/internal/ui/components"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "topicmap",
		Short:         "Topic-model scatter charts with a category dropdown",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default topicmap.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: console|json")

	root.AddCommand(newRenderCmd(&flags))
	root.AddCommand(newSpecCmd(&flags))
	root.AddCommand(newPaletteCmd(&flags))
	root.AddCommand(newInspectCmd(&flags))
	root.AddCommand(newFigureCmd(&flags))
	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newTUICmd(&flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	log, err := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, log)
}

// topicFlags holds the two ways of naming the topics of a chart.
type topicFlags struct {
	count int
	codes []int
}

func (t *topicFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&t.count, "topics", 0, "number of topics, coded 0..n-1")
	cmd.Flags().IntSliceVar(&t.codes, "topic-codes", nil, "explicit topic codes, e.g. 1,5,9")
}

func (t topicFlags) input() (chartdto.TopicsInput, error) {
	if t.count <= 0 && len(t.codes) == 0 {
		return chartdto.TopicsInput{}, fmt.Errorf("--topics or --topic-codes is required")
	}
	return chartdto.TopicsInput{Count: t.count, Codes: t.codes}, nil
}

type datasetFlags struct {
	source string
	model  string
}

func (d *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.source, "source", "", "listing table: file.csv, sqlite://path?table=t or postgres://...")
	cmd.Flags().StringVar(&d.model, "model", "", "topic model name substituted into column templates")
}

func (d datasetFlags) validate() error {
	if strings.TrimSpace(d.source) == "" {
		return fmt.Errorf("--source is required")
	}
	return nil
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var data datasetFlags
	var topics topicFlags
	var format, out string
	var publish bool

	cmd := &cobra.Command{
		Use:   "render --source <table> (--topics n | --topic-codes a,b)",
		Short: "Render the chart document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := data.validate(); err != nil {
				return err
			}
			topicsIn, err := topics.input()
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			format, out, err := resolveOutput(app.Config, format, out)
			if err != nil {
				return err
			}
			result, err := app.ChartCLI.Render(context.Background(), chartdto.RenderInput{
				Source:  data.source,
				Model:   data.model,
				Topics:  topicsIn,
				Format:  format,
				Output:  out,
				Publish: publish,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rendered %s format=%s layers=%d categories=%d points=%d id=%s\n",
				result.Path, result.Format, result.Layers, result.Categories, result.Points, result.RenderID)
			if result.PublishedURL != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", result.PublishedURL)
			}
			return nil
		},
	}
	data.register(cmd)
	topics.register(cmd)
	cmd.Flags().StringVar(&format, "format", "", "output format: html|json|yaml|png|svg|plugin (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output path (default <data_dir>/topicmap.<ext>)")
	cmd.Flags().BoolVar(&publish, "publish", false, "upload the document to the configured bucket")
	return cmd
}

// resolveOutput fills in the configured format and the default output path.
func resolveOutput(cfg config.Config, format, out string) (string, string, error) {
	if format == "" {
		format = cfg.Render.Format
	}
	if out != "" {
		return format, out, nil
	}
	parsed, err := chartdomain.ParseFormat(format)
	if err != nil {
		return "", "", err
	}
	return format, cfg.DefaultOutput(parsed.Extension()), nil
}

func newSpecCmd(flags *globalFlags) *cobra.Command {
	var data datasetFlags
	var topics topicFlags
	var format string

	cmd := &cobra.Command{
		Use:   "spec --source <table> (--topics n | --topic-codes a,b)",
		Short: "Print the figure as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := data.validate(); err != nil {
				return err
			}
			topicsIn, err := topics.input()
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			spec, err := app.ChartCLI.Spec(context.Background(), chartdto.SpecInput{
				Source: data.source,
				Model:  data.model,
				Topics: topicsIn,
				Format: format,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(spec.Body)
			return err
		},
	}
	data.register(cmd)
	topics.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "spec format: json|yaml")
	return cmd
}

func newPaletteCmd(flags *globalFlags) *cobra.Command {
	var topics topicFlags

	cmd := &cobra.Command{
		Use:   "palette (--topics n | --topic-codes a,b)",
		Short: "Show the color assigned to each topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			topicsIn, err := topics.input()
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			colors, err := app.ChartCLI.Palette(context.Background(), topicsIn)
			if err != nil {
				return err
			}
			rows := make([]components.PaletteRow, 0, len(colors))
			for _, c := range colors {
				rows = append(rows, components.PaletteRow{Topic: c})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderPalette(rows, false))
			return nil
		},
	}
	topics.register(cmd)
	return cmd
}

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var data datasetFlags

	cmd := &cobra.Command{
		Use:   "inspect --source <table>",
		Short: "Summarize categories and topics of a listing table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := data.validate(); err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			summary, err := app.DatasetCLI.Inspect(context.Background(), data.source, data.model)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "points=%d categories=%d topics=%v\n", summary.Points, len(summary.Categories), summary.TopicCodes)
			for _, c := range summary.Categories {
				parts := make([]string, 0, len(c.Topics))
				for _, t := range c.Topics {
					parts = append(parts, fmt.Sprintf("%s=%d", chartdomain.TopicTick(t.Code), t.Count))
				}
				_, _ = fmt.Fprintf(w, "%s points=%d %s\n", c.Name, c.Points, strings.Join(parts, " "))
			}
			return nil
		},
	}
	data.register(cmd)
	return cmd
}

func newFigureCmd(flags *globalFlags) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "figure --file <document>",
		Short: "Read the figure back from a rendered document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			fig, err := app.ChartCLI.Figure(context.Background(), file)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				_, err = fmt.Fprintln(w, string(fig.JSON))
				return err
			}
			_, _ = fmt.Fprintf(w, "layers=%d point_layers=%d legend_layers=%d points=%d\n", fig.Layers, fig.PointLayers, fig.LegendLayers, fig.Points)
			_, _ = fmt.Fprintf(w, "buttons=%s\n", strings.Join(fig.Buttons, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "rendered .html document or .json spec")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the figure JSON")
	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var file, addr string

	cmd := &cobra.Command{
		Use:   "serve --file <document>",
		Short: "Serve a rendered document for preview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			if addr == "" {
				addr = app.Config.Serve.Addr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app.Log.Info("preview server listening", logging.String("addr", addr), logging.String("file", file))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s\n", file, addr)
			return app.ChartCLI.PreviewServer(file).Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "rendered .html document")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var data datasetFlags
	var topics topicFlags
	var format, out string

	cmd := &cobra.Command{
		Use:   "tui --source <table> (--topics n | --topic-codes a,b)",
		Short: "Browse categories and topics before rendering",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := data.validate(); err != nil {
				return err
			}
			topicsIn, err := topics.input()
			if err != nil {
				return err
			}
			// The TUI owns the terminal, so logs only go out at error level.
			if flags.logLevel == "" {
				flags.logLevel = "error"
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			format, out, err := resolveOutput(app.Config, format, out)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app, uiapp.Params{
				Source: data.source,
				Model:  data.model,
				Topics: topicsIn,
				Format: format,
				Output: out,
			})
		},
	}
	data.register(cmd)
	topics.register(cmd)
	cmd.Flags().StringVar(&format, "format", "", "format used by r")
	cmd.Flags().StringVar(&out, "out", "", "output path used by r")
	return cmd
}
