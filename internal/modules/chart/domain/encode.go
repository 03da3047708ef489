package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "topicmap/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// EncodeFigure serializes a figure as indented JSON or YAML.
func EncodeFigure(fig Figure, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fig); err != nil {
			return nil, fmt.Errorf("encode figure json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fig); err != nil {
			return nil, fmt.Errorf("encode figure yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode figure yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: figure encoding %q", apperrors.ErrUnsupportedFormat, format)
	}
}
