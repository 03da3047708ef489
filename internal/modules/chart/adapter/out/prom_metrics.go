package out

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"topicmap/internal/modules/chart/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics keeps render metrics in a private registry. With a textfile
// path set, every Flush rewrites that file for the node exporter textfile
// collector; without one Flush does nothing.
type PromMetrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	points   prometheus.Gauge
	textfile string
}

func NewPromMetrics(textfile string) *PromMetrics {
	m := &PromMetrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topicmap",
			Name:      "renders_total",
			Help:      "Chart renders by output format and status.",
		}, []string{"format", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topicmap",
			Name:      "render_duration_seconds",
			Help:      "Time spent assembling and writing a chart.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"format"}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "topicmap",
			Name:      "render_points",
			Help:      "Points drawn by the last successful render.",
		}),
		textfile: textfile,
	}
	m.registry.MustRegister(m.renders, m.duration, m.points)
	return m
}

func (m *PromMetrics) ObserveRender(format domain.Format, status string, points int, elapsed time.Duration) {
	m.renders.WithLabelValues(string(format), status).Inc()
	m.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
	if status == "ok" {
		m.points.Set(float64(points))
	}
}

func (m *PromMetrics) Flush() error {
	if m.textfile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.textfile), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func (m *PromMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
