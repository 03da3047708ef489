package out

import (
	"context"
	"fmt"

	"topicmap/internal/modules/dataset/domain"
	datasetout "topicmap/internal/modules/dataset/port/out"
	apperrors "topicmap/internal/platform/errors"
)

// Router dispatches a reference to the source registered for its kind.
type Router struct {
	sources map[Kind]datasetout.TableSource
}

func NewRouter(csv, sqlite, postgres datasetout.TableSource) datasetout.TableSource {
	sources := map[Kind]datasetout.TableSource{}
	if csv != nil {
		sources[KindCSV] = csv
	}
	if sqlite != nil {
		sources[KindSQLite] = sqlite
	}
	if postgres != nil {
		sources[KindPostgres] = postgres
	}
	return &Router{sources: sources}
}

func NewDefaultRouter() datasetout.TableSource {
	return NewRouter(NewCSVSource(), NewSQLiteSource(), NewPostgresSource())
}

func (r *Router) Load(ctx context.Context, raw string) (domain.Table, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return domain.Table{}, err
	}
	source, ok := r.sources[ref.Kind]
	if !ok {
		return domain.Table{}, fmt.Errorf("%w: no %s source configured", apperrors.ErrUnsupportedFormat, ref.Kind)
	}
	if ref.Kind == KindCSV {
		return source.Load(ctx, ref.Location)
	}
	return source.Load(ctx, raw)
}
