package in

import (
	"context"

	"topicmap/internal/modules/chart/dto"
	chartin "topicmap/internal/modules/chart/port/in"
)

type CLIHandler struct {
	usecase chartin.Usecase
}

func NewCLIHandler(usecase chartin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx, input)
}

func (h CLIHandler) Spec(ctx context.Context, input dto.SpecInput) (dto.SpecOutput, error) {
	return h.usecase.Spec(ctx, input)
}

func (h CLIHandler) Palette(ctx context.Context, topics dto.TopicsInput) ([]dto.TopicColor, error) {
	return h.usecase.Palette(ctx, topics)
}

func (h CLIHandler) Figure(ctx context.Context, path string) (dto.FigureOutput, error) {
	return h.usecase.ReadFigure(ctx, path)
}

// PreviewServer builds the preview server for an already rendered document.
func (h CLIHandler) PreviewServer(path string) *PreviewServer {
	return NewPreviewServer(h.usecase, path)
}
