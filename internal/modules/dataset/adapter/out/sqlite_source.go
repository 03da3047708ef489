package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"topicmap/internal/modules/dataset/domain"
	datasetout "topicmap/internal/modules/dataset/port/out"
	apperrors "topicmap/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteSource struct{}

func NewSQLiteSource() datasetout.TableSource {
	return SQLiteSource{}
}

// Load expects ref in the form produced by ParseRef: a database path plus table.
func (SQLiteSource) Load(ctx context.Context, raw string) (domain.Table, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return domain.Table{}, err
	}
	if _, err := os.Stat(ref.Location); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("%w: database %s", apperrors.ErrNotFound, ref.Location)
		}
		return domain.Table{}, fmt.Errorf("stat database: %w", err)
	}
	db, err := sql.Open("sqlite", ref.Location)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(ref.Table))
	if err != nil {
		return domain.Table{}, fmt.Errorf("query table %s: %w", ref.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read columns: %w", err)
	}
	table := domain.Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.Table{}, fmt.Errorf("scan row: %w", err)
		}
		table.Rows = append(table.Rows, cells(values))
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("iterate rows: %w", err)
	}
	return table, nil
}
