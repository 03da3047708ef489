package in

import (
	"context"

	"topicmap/internal/modules/dataset/dto"
	datasetin "topicmap/internal/modules/dataset/port/in"
)

type CLIHandler struct {
	usecase datasetin.Usecase
}

func NewCLIHandler(usecase datasetin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Inspect(ctx context.Context, source, model string) (dto.SummaryOutput, error) {
	return h.usecase.Summarize(ctx, dto.LoadInput{Source: source, Model: model})
}
