package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Log     LogConfig     `mapstructure:"log"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Render  RenderConfig  `mapstructure:"render"`
	Publish PublishConfig `mapstructure:"publish"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatasetConfig struct {
	Columns ColumnsConfig `mapstructure:"columns"`
}

// ColumnsConfig names the table columns. TopicLabel, Keywords and TopicCode
// may contain a {model} placeholder.
type ColumnsConfig struct {
	Category    string `mapstructure:"category"`
	X           string `mapstructure:"x"`
	Y           string `mapstructure:"y"`
	Description string `mapstructure:"description"`
	TopicLabel  string `mapstructure:"topic_label"`
	Keywords    string `mapstructure:"keywords"`
	TopicCode   string `mapstructure:"topic_code"`
}

type ChartConfig struct {
	Title         string  `mapstructure:"title"`
	Height        int     `mapstructure:"height"`
	FontColor     string  `mapstructure:"font_color"`
	Background    string  `mapstructure:"background"`
	FontSize      int     `mapstructure:"font_size"`
	TitleFontSize int     `mapstructure:"title_font_size"`
	MarkerSize    int     `mapstructure:"marker_size"`
	MarkerOpacity float64 `mapstructure:"marker_opacity"`
	WrapWidth     int     `mapstructure:"wrap_width"`
	LegendTitle   string  `mapstructure:"legend_title"`
}

type RenderConfig struct {
	Format         string `mapstructure:"format"`
	PlotlyMode     string `mapstructure:"plotly_mode"`
	PlotlyURL      string `mapstructure:"plotly_url"`
	SnapshotWidth  int    `mapstructure:"snapshot_width"`
	SnapshotHeight int    `mapstructure:"snapshot_height"`
	PluginPath     string `mapstructure:"plugin_path"`
	PluginSHA256   string `mapstructure:"plugin_sha256"`
}

type PublishConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

func (p PublishConfig) Enabled() bool {
	return strings.TrimSpace(p.Endpoint) != ""
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	validFormats     = map[string]bool{"html": true, "json": true, "yaml": true, "png": true, "svg": true, "plugin": true}
	validPlotlyModes = map[string]bool{"cdn": true, "directory": true}
)

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !validFormats[c.Render.Format] {
		return fmt.Errorf("render.format %q is not supported", c.Render.Format)
	}
	if !validPlotlyModes[c.Render.PlotlyMode] {
		return fmt.Errorf("render.plotly_mode %q is not supported", c.Render.PlotlyMode)
	}
	if c.Chart.Height <= 0 || c.Chart.FontSize <= 0 || c.Chart.TitleFontSize <= 0 || c.Chart.MarkerSize <= 0 {
		return fmt.Errorf("chart sizes must be positive")
	}
	if c.Chart.MarkerOpacity <= 0 || c.Chart.MarkerOpacity > 1 {
		return fmt.Errorf("chart.marker_opacity must be in (0, 1]")
	}
	if c.Chart.WrapWidth <= 0 {
		return fmt.Errorf("chart.wrap_width must be positive")
	}
	if c.Render.SnapshotWidth <= 0 || c.Render.SnapshotHeight <= 0 {
		return fmt.Errorf("render snapshot size must be positive")
	}
	if c.Publish.Enabled() && strings.TrimSpace(c.Publish.Bucket) == "" {
		return fmt.Errorf("publish.bucket is required when publish.endpoint is set")
	}
	return nil
}

// DefaultOutput is where a render goes when no output path is given.
func (c Config) DefaultOutput(ext string) string {
	return filepath.Join(c.DataDir, "topicmap"+ext)
}
