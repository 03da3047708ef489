package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"topicmap/internal/modules/chart/domain"
	"topicmap/internal/modules/chart/dto"
	chartin "topicmap/internal/modules/chart/port/in"
	chartout "topicmap/internal/modules/chart/port/out"
	"topicmap/internal/modules/chart/service"
	datasetdto "topicmap/internal/modules/dataset/dto"
	datasetin "topicmap/internal/modules/dataset/port/in"
)

type Interactor struct {
	svc     *service.ChartService
	dataset datasetin.Usecase
	reader  chartout.FigureReader
	format  domain.Format
}

// NewInteractor uses defaultFormat when a request leaves the format empty.
func NewInteractor(svc *service.ChartService, dataset datasetin.Usecase, reader chartout.FigureReader, defaultFormat domain.Format) chartin.Usecase {
	if defaultFormat == "" {
		defaultFormat = domain.FormatHTML
	}
	return &Interactor{svc: svc, dataset: dataset, reader: reader, format: defaultFormat}
}

func (i *Interactor) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	format, err := i.parseFormat(input.Format)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	points, err := i.points(ctx, input.Source, input.Model)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	result, err := i.svc.Render(ctx, service.RenderRequest{
		Points:  points,
		Topics:  topicsOf(input.Topics),
		Format:  format,
		Dest:    input.Output,
		Publish: input.Publish,
	})
	if err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{
		RenderID:     result.ID,
		Path:         result.Path,
		Format:       string(result.Format),
		Layers:       result.Layers,
		Categories:   result.Categories,
		Points:       result.Points,
		PublishedURL: result.PublishedURL,
		Duration:     result.Duration,
	}, nil
}

func (i *Interactor) Spec(ctx context.Context, input dto.SpecInput) (dto.SpecOutput, error) {
	format := domain.FormatJSON
	if input.Format != "" {
		parsed, err := domain.ParseFormat(input.Format)
		if err != nil {
			return dto.SpecOutput{}, err
		}
		format = parsed
	}
	points, err := i.points(ctx, input.Source, input.Model)
	if err != nil {
		return dto.SpecOutput{}, err
	}
	fig, err := i.svc.Figure(points, topicsOf(input.Topics))
	if err != nil {
		return dto.SpecOutput{}, err
	}
	body, err := domain.EncodeFigure(fig, format)
	if err != nil {
		return dto.SpecOutput{}, err
	}
	return dto.SpecOutput{Format: string(format), Body: body}, nil
}

func (i *Interactor) Palette(_ context.Context, input dto.TopicsInput) ([]dto.TopicColor, error) {
	palette, err := i.svc.Palette(topicsOf(input))
	if err != nil {
		return nil, err
	}
	codes := palette.Codes()
	colors := palette.Colors()
	out := make([]dto.TopicColor, 0, len(codes))
	for n, code := range codes {
		out = append(out, dto.TopicColor{Code: code, Tick: domain.TopicTick(code), Color: colors[n]})
	}
	return out, nil
}

func (i *Interactor) ReadFigure(ctx context.Context, path string) (dto.FigureOutput, error) {
	if i.reader == nil {
		return dto.FigureOutput{}, fmt.Errorf("figure reader is not configured")
	}
	fig, err := i.reader.Read(ctx, path)
	if err != nil {
		return dto.FigureOutput{}, err
	}
	raw, err := json.Marshal(fig)
	if err != nil {
		return dto.FigureOutput{}, fmt.Errorf("encode figure: %w", err)
	}
	out := dto.FigureOutput{
		Path:         path,
		Layers:       len(fig.Data),
		LegendLayers: len(fig.LegendLayers()),
		JSON:         raw,
	}
	for _, layer := range fig.PointLayers() {
		out.PointLayers++
		out.Points += len(layer.X)
		out.Categories = append(out.Categories, layer.Name)
	}
	for _, menu := range fig.Layout.UpdateMenus {
		for _, b := range menu.Buttons {
			out.Buttons = append(out.Buttons, b.Label)
		}
	}
	return out, nil
}

func (i *Interactor) parseFormat(raw string) (domain.Format, error) {
	if raw == "" {
		return i.format, nil
	}
	return domain.ParseFormat(raw)
}

func (i *Interactor) points(ctx context.Context, source, model string) ([]domain.Point, error) {
	listings, err := i.dataset.LoadListings(ctx, datasetdto.LoadInput{Source: source, Model: model})
	if err != nil {
		return nil, err
	}
	points := make([]domain.Point, 0, len(listings.Rows))
	for _, row := range listings.Rows {
		points = append(points, domain.Point{
			Category:    row.Category,
			X:           row.X,
			Y:           row.Y,
			TopicCode:   row.TopicCode,
			TopicLabel:  row.TopicLabel,
			Keywords:    row.Keywords,
			Description: row.Description,
		})
	}
	return points, nil
}

func topicsOf(input dto.TopicsInput) domain.TopicAssignment {
	if len(input.Codes) > 0 {
		return domain.SparseTopics(input.Codes)
	}
	return domain.DenseTopics(input.Count)
}
