package config

import "github.com/spf13/viper"

var defaults = map[string]any{
	"data_dir":                    ".",
	"log.level":                   "info",
	"log.format":                  "console",
	"dataset.columns.category":    "City",
	"dataset.columns.x":           "x",
	"dataset.columns.y":           "y",
	"dataset.columns.description": "Todo",
	"dataset.columns.topic_label": "topic_string",
	"dataset.columns.keywords":    "{model}_Topic_Keywords",
	"dataset.columns.topic_code":  "{model}_Topic",
	"chart.title":                 "Airbnb",
	"chart.height":                800,
	"chart.font_color":            "#FFFFFF",
	"chart.background":            "#000000",
	"chart.font_size":             11,
	"chart.title_font_size":       14,
	"chart.marker_size":           12,
	"chart.marker_opacity":        0.9,
	"chart.wrap_width":            100,
	"chart.legend_title":          "Topics",
	"render.format":               "html",
	"render.plotly_mode":          "cdn",
	"render.plotly_url":           "https://cdn.plot.ly/plotly-2.35.2.min.js",
	"render.snapshot_width":       1200,
	"render.snapshot_height":      800,
	"render.plugin_path":          "",
	"render.plugin_sha256":        "",
	"publish.endpoint":            "",
	"publish.access_key":          "",
	"publish.secret_key":          "",
	"publish.bucket":              "",
	"publish.prefix":              "topicmap",
	"publish.use_ssl":             true,
	"metrics.textfile":            "",
	"serve.addr":                  "127.0.0.1:8765",
}

// registerDefaults gives every key a default so AutomaticEnv can resolve
// overrides during Unmarshal even without a config file.
func registerDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
