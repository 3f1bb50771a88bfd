package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type CoverLetterRepository struct {
	mu    sync.RWMutex
	items map[string]coverletter.CoverLetter
}

func NewCoverLetterRepository() *CoverLetterRepository {
	return &CoverLetterRepository{items: make(map[string]coverletter.CoverLetter)}
}

func (r *CoverLetterRepository) Create(_ context.Context, item coverletter.CoverLetter) (coverletter.CoverLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return coverletter.CoverLetter{}, fmt.Errorf("%w: cover letter %s", usecase.ErrConflict, item.ID)
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *CoverLetterRepository) GetByID(_ context.Context, userID, id string) (coverletter.CoverLetter, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return coverletter.CoverLetter{}, false, nil
	}
	return item, true, nil
}

func (r *CoverLetterRepository) ListByUserID(_ context.Context, userID string) ([]coverletter.CoverLetter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]coverletter.CoverLetter, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CoverLetterRepository) Delete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
