package out

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "topicmap/internal/platform/errors"
)

const DefaultTable = "listings"

type Kind string

const (
	KindCSV      Kind = "csv"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Ref is a parsed table reference. Location is a file path for csv and
// sqlite and a connection string for postgres.
type Ref struct {
	Kind     Kind
	Location string
	Table    string
}

func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("%w: table source is required", apperrors.ErrInvalidInput)
	}
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return parseURLRef(KindPostgres, raw)
	case strings.HasPrefix(raw, "sqlite://"):
		return parseURLRef(KindSQLite, raw)
	}
	switch strings.ToLower(filepath.Ext(raw)) {
	case ".db", ".sqlite", ".sqlite3":
		return Ref{Kind: KindSQLite, Location: raw, Table: DefaultTable}, nil
	default:
		return Ref{Kind: KindCSV, Location: raw}, nil
	}
}

func parseURLRef(kind Kind, raw string) (Ref, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: table source %q: %v", apperrors.ErrInvalidInput, raw, err)
	}
	query := u.Query()
	table := query.Get("table")
	if table == "" {
		table = DefaultTable
	}
	if !identPattern.MatchString(table) {
		return Ref{}, fmt.Errorf("%w: table name %q", apperrors.ErrInvalidInput, table)
	}
	query.Del("table")
	if kind == KindSQLite {
		location := u.Host + u.Path
		if location == "" {
			return Ref{}, fmt.Errorf("%w: sqlite source needs a path", apperrors.ErrInvalidInput)
		}
		return Ref{Kind: kind, Location: location, Table: table}, nil
	}
	u.RawQuery = query.Encode()
	return Ref{Kind: kind, Location: u.String(), Table: table}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func cells(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cell(v)
	}
	return out
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
