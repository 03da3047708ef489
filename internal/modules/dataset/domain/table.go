package domain

import (
	"fmt"
	"strings"

	apperrors "topicmap/internal/platform/errors"
)

// Table is a loaded table with every cell kept as text; typing happens when
// listings are parsed so that all sources behave the same.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) Index(column string) (int, error) {
	for i, c := range t.Columns {
		if c == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, column)
}

// Validate checks that named columns are unique and rows are rectangular.
// Blank header cells, such as the unnamed index column of a pandas export,
// are allowed since no schema column can address them.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: duplicate column %q", apperrors.ErrInvalidInput, c)
		}
		seen[c] = struct{}{}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", apperrors.ErrInvalidInput, i+1, len(row), len(t.Columns))
		}
	}
	return nil
}
