package service

import (
	"context"
	"fmt"
	"strings"

	"topicmap/internal/modules/dataset/domain"
	datasetout "topicmap/internal/modules/dataset/port/out"
	apperrors "topicmap/internal/platform/errors"
	"topicmap/internal/platform/logging"
)

type DatasetService struct {
	source datasetout.TableSource
	schema domain.Schema
	log    logging.Logger
}

func NewDatasetService(source datasetout.TableSource, schema domain.Schema, log logging.Logger) *DatasetService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &DatasetService{source: source, schema: schema, log: log}
}

func (s *DatasetService) Schema(model string) (domain.Schema, error) {
	if s.schema.NeedsModel() && strings.TrimSpace(model) == "" {
		return domain.Schema{}, fmt.Errorf("%w: model name is required", apperrors.ErrInvalidInput)
	}
	return s.schema.ForModel(model), nil
}

func (s *DatasetService) LoadListings(ctx context.Context, ref, model string) ([]domain.Listing, error) {
	schema, err := s.Schema(model)
	if err != nil {
		return nil, err
	}
	table, err := s.source.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	listings, err := domain.ParseListings(table, schema)
	if err != nil {
		return nil, fmt.Errorf("parse listings: %w", err)
	}
	s.log.Debug("table loaded",
		logging.String("source", ref),
		logging.String("model", model),
		logging.Int("columns", len(table.Columns)),
		logging.Int("rows", len(listings)),
	)
	return listings, nil
}

func (s *DatasetService) Summarize(ctx context.Context, ref, model string) (domain.Summary, error) {
	listings, err := s.LoadListings(ctx, ref, model)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(listings), nil
}
