package out

import (
	"context"
	"fmt"

	"topicmap/internal/modules/dataset/domain"
	datasetout "topicmap/internal/modules/dataset/port/out"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PostgresSource struct{}

func NewPostgresSource() datasetout.TableSource {
	return PostgresSource{}
}

func (PostgresSource) Load(ctx context.Context, raw string) (domain.Table, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return domain.Table{}, err
	}
	conn, err := pgx.Connect(ctx, ref.Location)
	if err != nil {
		return domain.Table{}, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(ctx, "SELECT * FROM "+pgx.Identifier{ref.Table}.Sanitize())
	if err != nil {
		return domain.Table{}, fmt.Errorf("query table %s: %w", ref.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	table := domain.Table{Columns: make([]string, len(fields))}
	for i, f := range fields {
		table.Columns[i] = f.Name
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return domain.Table{}, fmt.Errorf("read row: %w", err)
		}
		table.Rows = append(table.Rows, cells(normalizeNumeric(values)))
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("iterate rows: %w", err)
	}
	return table, nil
}

// normalizeNumeric turns NUMERIC values into float64 so they print like the
// other sources.
func normalizeNumeric(values []any) []any {
	for i, v := range values {
		n, ok := v.(pgtype.Numeric)
		if !ok {
			continue
		}
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			values[i] = nil
			continue
		}
		values[i] = f.Float64
	}
	return values
}
