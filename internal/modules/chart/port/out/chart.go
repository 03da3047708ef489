package out

import (
	"context"
	"time"

	"topicmap/internal/modules/chart/domain"
)

// Renderer writes a figure to dest. Implementations must leave nothing at
// dest when they fail.
type Renderer interface {
	Format() domain.Format
	Render(ctx context.Context, fig domain.Figure, dest string) error
}

type Publisher interface {
	Publish(ctx context.Context, localPath, key string) (string, error)
}

type Metrics interface {
	ObserveRender(format domain.Format, status string, points int, elapsed time.Duration)
	Flush() error
}

// FigureReader recovers the figure embedded in a rendered document.
type FigureReader interface {
	Read(ctx context.Context, path string) (domain.Figure, error)
}
