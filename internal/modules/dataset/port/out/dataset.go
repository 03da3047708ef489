package out

import (
	"context"

	"topicmap/internal/modules/dataset/domain"
)

// TableSource loads a whole table identified by ref (a path or DSN).
type TableSource interface {
	Load(ctx context.Context, ref string) (domain.Table, error)
}
