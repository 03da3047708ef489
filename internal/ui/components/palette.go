package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	chartdto "topicmap/internal/modules/chart/dto"
	"topicmap/internal/ui/theme"
)

// Swatch is a two-cell block painted with a hex color.
func Swatch(color string) string {
	if color == "" {
		return theme.Muted.Render("??")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

// PaletteRow is one legend entry and the number of points drawn in its color.
type PaletteRow struct {
	Topic chartdto.TopicColor
	Count int
}

// RenderPalette lists rows in legend order. Counts are printed only when
// showCounts is set.
func RenderPalette(rows []PaletteRow, showCounts bool) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Topic.Tick))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("%s %-*s %s", Swatch(r.Topic.Color), width, r.Topic.Tick, theme.Muted.Render(fmt.Sprintf("%-7s", r.Topic.Color)))
		if showCounts {
			count := fmt.Sprintf("%6d", r.Count)
			if r.Count == 0 {
				count = theme.Muted.Render(count)
			} else {
				count = theme.Hot.Render(count)
			}
			line += " " + count
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
