package out

import (
	"context"
	"fmt"
	"io"

	"topicmap/internal/modules/chart/domain"
	apperrors "topicmap/internal/platform/errors"
)

// SpecWriter writes the figure itself instead of a document around it.
type SpecWriter struct {
	format domain.Format
}

func NewSpecWriter(format domain.Format) (*SpecWriter, error) {
	if format != domain.FormatJSON && format != domain.FormatYAML {
		return nil, fmt.Errorf("%w: spec format %q", apperrors.ErrUnsupportedFormat, format)
	}
	return &SpecWriter{format: format}, nil
}

func (s *SpecWriter) Format() domain.Format {
	return s.format
}

func (s *SpecWriter) Render(ctx context.Context, fig domain.Figure, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := domain.EncodeFigure(fig, s.format)
	if err != nil {
		return err
	}
	return writeAtomic(dest, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
}
