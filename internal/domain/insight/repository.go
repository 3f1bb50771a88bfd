package insight

import (
	"context"
	"time"
)

type Repository interface {
	GetByIndustry(ctx context.Context, industry string) (Insight, bool, error)
	// Create inserts a new insight. A duplicate industry yields a conflict error.
	Create(ctx context.Context, item Insight) (Insight, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]Insight, error)
	Replace(ctx context.Context, item Insight) (Insight, error)
}

type Generator interface {
	Generate(ctx context.Context, industry string) (Generated, error)
}
