package in

import (
	"context"

	"topicmap/internal/modules/chart/dto"
)

type Usecase interface {
	Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error)
	Spec(ctx context.Context, input dto.SpecInput) (dto.SpecOutput, error)
	Palette(ctx context.Context, input dto.TopicsInput) ([]dto.TopicColor, error)
	ReadFigure(ctx context.Context, path string) (dto.FigureOutput, error)
}
