package out

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"topicmap/internal/modules/dataset/domain"
	datasetout "topicmap/internal/modules/dataset/port/out"
	apperrors "topicmap/internal/platform/errors"
)

type CSVSource struct{}

func NewCSVSource() datasetout.TableSource {
	return CSVSource{}
}

func (CSVSource) Load(ctx context.Context, path string) (domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("%w: table %s", apperrors.ErrNotFound, path)
		}
		return domain.Table{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()
	return readCSV(ctx, file)
}

func readCSV(ctx context.Context, r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Table{}, fmt.Errorf("%w: table has no header", apperrors.ErrInvalidInput)
		}
		return domain.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	table := domain.Table{Columns: header}
	for {
		if err := ctx.Err(); err != nil {
			return domain.Table{}, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read row: %w", err)
		}
		table.Rows = append(table.Rows, record)
	}
	if err := table.Validate(); err != nil {
		return domain.Table{}, err
	}
	return table, nil
}
