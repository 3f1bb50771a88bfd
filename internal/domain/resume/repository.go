package resume

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Resume, bool, error)
	Upsert(ctx context.Context, item Resume) (Resume, error)
}
