package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "topicmap/internal/platform/errors"
)

// ColorStop is one (position, color) pair of a colorscale. It encodes as the
// two-element array plotly expects.
type ColorStop struct {
	Position float64
	Color    string
}

type Colorscale []ColorStop

func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Position, s.Color})
}

func (s *ColorStop) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode color stop: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decode color stop: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Position); err != nil {
		return fmt.Errorf("decode color stop position: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.Color); err != nil {
		return fmt.Errorf("decode color stop color: %w", err)
	}
	return nil
}

func (s ColorStop) MarshalYAML() (any, error) {
	return []any{s.Position, s.Color}, nil
}

// DiscreteColorscale builds a step function over [0,1]: interval k of the
// sorted, normalized boundaries is painted flat with colors[k]. The result
// has exactly 2*len(colors) stops.
func DiscreteColorscale(boundaries []float64, colors []string) (Colorscale, error) {
	if len(boundaries) < 2 {
		return nil, fmt.Errorf("%w: colorscale needs at least 2 boundaries, got %d", apperrors.ErrInvalidInput, len(boundaries))
	}
	if len(colors) != len(boundaries)-1 {
		return nil, fmt.Errorf("%w: %d boundaries need %d colors, got %d", apperrors.ErrInvalidInput, len(boundaries), len(boundaries)-1, len(colors))
	}
	sorted := append([]float64(nil), boundaries...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		return nil, fmt.Errorf("%w: colorscale boundaries span no range", apperrors.ErrInvalidInput)
	}
	normalized := make([]float64, len(sorted))
	for i, v := range sorted {
		normalized[i] = (v - lo) / (hi - lo)
	}

	out := make(Colorscale, 0, 2*len(colors))
	for k, color := range colors {
		out = append(out, ColorStop{Position: normalized[k], Color: color}, ColorStop{Position: normalized[k+1], Color: color})
	}
	return out, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
