package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"topicmap/internal/modules/chart/domain"
	chartout "topicmap/internal/modules/chart/port/out"
	"topicmap/internal/platform/clock"
	apperrors "topicmap/internal/platform/errors"
	"topicmap/internal/platform/id"
	"topicmap/internal/platform/logging"
	"topicmap/internal/platform/slug"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type RenderRequest struct {
	Points  []domain.Point
	Topics  domain.TopicAssignment
	Format  domain.Format
	Dest    string
	Publish bool
}

type ChartService struct {
	assembler ChartAssembler
	renderers map[domain.Format]chartout.Renderer
	publisher chartout.Publisher
	metrics   chartout.Metrics
	clock     clock.Clock
	idGen     id.Generator
	log       logging.Logger
}

func NewChartService(
	assembler ChartAssembler,
	renderers []chartout.Renderer,
	publisher chartout.Publisher,
	metrics chartout.Metrics,
	clock clock.Clock,
	idGen id.Generator,
	log logging.Logger,
) *ChartService {
	byFormat := make(map[domain.Format]chartout.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ChartService{
		assembler: assembler,
		renderers: byFormat,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		idGen:     idGen,
		log:       log,
	}
}

func (s *ChartService) Figure(points []domain.Point, topics domain.TopicAssignment) (domain.Figure, error) {
	return s.assembler.Assemble(points, topics)
}

func (s *ChartService) Palette(topics domain.TopicAssignment) (domain.TopicPalette, error) {
	return domain.NewTopicPalette(topics)
}

func (s *ChartService) Render(ctx context.Context, req RenderRequest) (domain.RenderResult, error) {
	if strings.TrimSpace(req.Dest) == "" {
		return domain.RenderResult{}, fmt.Errorf("%w: output path is required", apperrors.ErrInvalidInput)
	}
	renderer, ok := s.renderers[req.Format]
	if !ok {
		return domain.RenderResult{}, fmt.Errorf("%w: no renderer for %q", apperrors.ErrUnsupportedFormat, req.Format)
	}
	if req.Publish && s.publisher == nil {
		return domain.RenderResult{}, fmt.Errorf("%w: publishing is not configured", apperrors.ErrInvalidInput)
	}

	renderID := s.idGen.New()
	start := s.clock.Now()
	log := s.log.With(logging.String("render_id", renderID), logging.String("format", string(req.Format)))

	result, err := s.render(ctx, renderer, req, renderID)
	elapsed := s.clock.Now().Sub(start)
	if err != nil {
		s.observe(log, req.Format, statusError, len(req.Points), elapsed)
		log.Error("render failed", logging.String("dest", req.Dest), logging.Err(err))
		return domain.RenderResult{}, err
	}
	result.RenderedAt = start
	result.Duration = elapsed
	s.observe(log, req.Format, statusOK, result.Points, elapsed)
	log.Info("render complete",
		logging.String("dest", result.Path),
		logging.Int("layers", result.Layers),
		logging.Int("points", result.Points),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (s *ChartService) render(ctx context.Context, renderer chartout.Renderer, req RenderRequest, renderID string) (domain.RenderResult, error) {
	fig, err := s.assembler.Assemble(req.Points, req.Topics)
	if err != nil {
		return domain.RenderResult{}, fmt.Errorf("assemble figure: %w", err)
	}
	if err := renderer.Render(ctx, fig, req.Dest); err != nil {
		return domain.RenderResult{}, fmt.Errorf("render %s: %w", req.Format, err)
	}
	result := domain.RenderResult{
		ID:         renderID,
		Path:       req.Dest,
		Format:     req.Format,
		Layers:     len(fig.Data),
		Categories: len(fig.PointLayers()),
		Points:     len(req.Points),
	}
	if req.Publish {
		url, err := s.publisher.Publish(ctx, req.Dest, ObjectKey(req.Dest))
		if err != nil {
			return domain.RenderResult{}, fmt.Errorf("publish %s: %w", req.Dest, err)
		}
		result.PublishedURL = url
	}
	return result, nil
}

func (s *ChartService) observe(log logging.Logger, format domain.Format, status string, points int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveRender(format, status, points, elapsed)
	if err := s.metrics.Flush(); err != nil {
		log.Warn("flush metrics", logging.Err(err))
	}
}

// ObjectKey derives a stable storage key from a local file name.
func ObjectKey(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return slug.Key("", strings.TrimSuffix(base, ext), strings.ToLower(ext))
}
