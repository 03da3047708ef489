package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "topicmap/internal/platform/errors"
)

type Format string

const (
	FormatHTML   Format = "html"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatPNG    Format = "png"
	FormatSVG    Format = "svg"
	FormatPlugin Format = "plugin"
)

func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatHTML, FormatJSON, FormatYAML, FormatPNG, FormatSVG, FormatPlugin:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, raw)
	}
}

// Extension is the file suffix a document of this format gets by default.
func (f Format) Extension() string {
	switch f {
	case FormatPlugin:
		return ".html"
	default:
		return "." + string(f)
	}
}

// Point is one listing placed on the chart.
type Point struct {
	Category    string
	X           float64
	Y           float64
	TopicCode   int
	TopicLabel  string
	Keywords    string
	Description string
}

// Categories returns the distinct categories in first-seen order.
func Categories(points []Point) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range points {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

type RenderResult struct {
	ID           string
	Path         string
	Format       Format
	Layers       int
	Categories   int
	Points       int
	PublishedURL string
	RenderedAt   time.Time
	Duration     time.Duration
}
