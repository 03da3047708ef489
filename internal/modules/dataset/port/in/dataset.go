package in

import (
	"context"

	"topicmap/internal/modules/dataset/dto"
)

type Usecase interface {
	LoadListings(ctx context.Context, input dto.LoadInput) (dto.ListingsOutput, error)
	Summarize(ctx context.Context, input dto.LoadInput) (dto.SummaryOutput, error)
}
