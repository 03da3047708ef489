package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "topicmap/internal/platform/errors"
)

// Listing is one row of the table resolved against a Schema.
type Listing struct {
	Category    string
	X           float64
	Y           float64
	TopicCode   int
	TopicLabel  string
	Keywords    string
	Description string
}

type columnIndex struct {
	category, x, y, description, label, keywords, code int
}

func resolve(table Table, schema Schema) (columnIndex, error) {
	var idx columnIndex
	targets := []struct {
		name string
		dst  *int
	}{
		{schema.Category, &idx.category},
		{schema.X, &idx.x},
		{schema.Y, &idx.y},
		{schema.Description, &idx.description},
		{schema.TopicLabel, &idx.label},
		{schema.Keywords, &idx.keywords},
		{schema.TopicCode, &idx.code},
	}
	for _, target := range targets {
		i, err := table.Index(target.name)
		if err != nil {
			return columnIndex{}, err
		}
		*target.dst = i
	}
	return idx, nil
}

// ParseListings fails on the first missing column or malformed cell; no row
// is skipped.
func ParseListings(table Table, schema Schema) ([]Listing, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	idx, err := resolve(table, schema)
	if err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(table.Rows))
	for r, row := range table.Rows {
		line := r + 1
		x, err := parseFloat(row[idx.x])
		if err != nil {
			return nil, cellError(line, schema.X, err)
		}
		y, err := parseFloat(row[idx.y])
		if err != nil {
			return nil, cellError(line, schema.Y, err)
		}
		code, err := ParseTopicCode(row[idx.code])
		if err != nil {
			return nil, cellError(line, schema.TopicCode, err)
		}
		out = append(out, Listing{
			Category:    row[idx.category],
			X:           x,
			Y:           y,
			TopicCode:   code,
			TopicLabel:  row[idx.label],
			Keywords:    row[idx.keywords],
			Description: row[idx.description],
		})
	}
	return out, nil
}

// ParseTopicCode accepts integral values written as floats ("3.0"), which is
// how topic columns come out of dataframe exports.
func ParseTopicCode(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("topic code %q is not a number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("topic code %q is not an integer", raw)
	}
	return int(f), nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

func cellError(line int, column string, err error) error {
	return fmt.Errorf("%w: row %d column %s: %v", apperrors.ErrInvalidInput, line, column, err)
}
