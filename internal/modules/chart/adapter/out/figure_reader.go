package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"topicmap/internal/modules/chart/domain"
	chartout "topicmap/internal/modules/chart/port/out"
	apperrors "topicmap/internal/platform/errors"
)

type FileFigureReader struct{}

func NewFigureReader() chartout.FigureReader {
	return FileFigureReader{}
}

// Read accepts a rendered HTML document or a JSON figure spec.
func (FileFigureReader) Read(ctx context.Context, path string) (domain.Figure, error) {
	if err := ctx.Err(); err != nil {
		return domain.Figure{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Figure{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return domain.Figure{}, fmt.Errorf("read document: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeFigure(raw)
	case ".html", ".htm":
		return ReadFigureHTML(raw)
	default:
		return domain.Figure{}, fmt.Errorf("%w: cannot read figures from %s", apperrors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFigureHTML extracts the figure embedded by HTMLRenderer.
func ReadFigureHTML(doc []byte) (domain.Figure, error) {
	start := bytes.Index(doc, []byte(figureOpenTag))
	if start < 0 {
		return domain.Figure{}, fmt.Errorf("%w: document has no embedded figure", apperrors.ErrNotFound)
	}
	body := doc[start+len(figureOpenTag):]
	end := bytes.Index(body, []byte("</script>"))
	if end < 0 {
		return domain.Figure{}, fmt.Errorf("%w: embedded figure is not terminated", apperrors.ErrInvalidInput)
	}
	return decodeFigure(body[:end])
}

func decodeFigure(raw []byte) (domain.Figure, error) {
	var fig domain.Figure
	if err := json.Unmarshal(raw, &fig); err != nil {
		return domain.Figure{}, fmt.Errorf("%w: decode figure: %v", apperrors.ErrInvalidInput, err)
	}
	return fig, nil
}
