package usecase

import (
	"context"
	"sort"

	"topicmap/internal/modules/dataset/dto"
	datasetin "topicmap/internal/modules/dataset/port/in"
	"topicmap/internal/modules/dataset/service"
)

type Interactor struct {
	svc *service.DatasetService
}

func NewInteractor(svc *service.DatasetService) datasetin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadListings(ctx context.Context, input dto.LoadInput) (dto.ListingsOutput, error) {
	listings, err := i.svc.LoadListings(ctx, input.Source, input.Model)
	if err != nil {
		return dto.ListingsOutput{}, err
	}
	rows := make([]dto.ListingRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, dto.ListingRow{
			Category:    l.Category,
			X:           l.X,
			Y:           l.Y,
			TopicCode:   l.TopicCode,
			TopicLabel:  l.TopicLabel,
			Keywords:    l.Keywords,
			Description: l.Description,
		})
	}
	return dto.ListingsOutput{Rows: rows}, nil
}

func (i *Interactor) Summarize(ctx context.Context, input dto.LoadInput) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summarize(ctx, input.Source, input.Model)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{
		TopicCodes: summary.TopicCodes,
		Points:     summary.Points,
		Categories: make([]dto.CategorySummary, 0, len(summary.Categories)),
	}
	for _, c := range summary.Categories {
		topics := make([]dto.TopicCount, 0, len(c.TopicCounts))
		for code, count := range c.TopicCounts {
			topics = append(topics, dto.TopicCount{Code: code, Count: count})
		}
		sort.Slice(topics, func(a, b int) bool { return topics[a].Code < topics[b].Code })
		out.Categories = append(out.Categories, dto.CategorySummary{Name: c.Name, Points: c.Points, Topics: topics})
	}
	return out, nil
}
