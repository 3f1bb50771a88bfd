package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/career-coach/internal/domain/resume"
)

type ResumeRepository struct {
	mu       sync.RWMutex
	byUserID map[string]resume.Resume
}

func NewResumeRepository() *ResumeRepository {
	return &ResumeRepository{byUserID: make(map[string]resume.Resume)}
}

func (r *ResumeRepository) GetByUserID(_ context.Context, userID string) (resume.Resume, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byUserID[userID]
	if !ok {
		return resume.Resume{}, false, nil
	}
	return cloneResume(item), true, nil
}

// Upsert keeps the id and creation time of an existing resume.
func (r *ResumeRepository) Upsert(_ context.Context, item resume.Resume) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byUserID[item.UserID]; ok {
		current.Content = item.Content
		current.UpdatedAt = item.UpdatedAt
		r.byUserID[item.UserID] = current
		return cloneResume(current), nil
	}
	r.byUserID[item.UserID] = cloneResume(item)
	return cloneResume(item), nil
}

func cloneResume(item resume.Resume) resume.Resume {
	copied := item
	if item.ATSScore != nil {
		score := *item.ATSScore
		copied.ATSScore = &score
	}
	return copied
}
