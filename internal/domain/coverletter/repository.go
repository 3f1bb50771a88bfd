package coverletter

import "context"

type Repository interface {
	Create(ctx context.Context, item CoverLetter) (CoverLetter, error)
	GetByID(ctx context.Context, userID, id string) (CoverLetter, bool, error)
	ListByUserID(ctx context.Context, userID string) ([]CoverLetter, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type Writer interface {
	Write(ctx context.Context, req Request) (string, error)
}
