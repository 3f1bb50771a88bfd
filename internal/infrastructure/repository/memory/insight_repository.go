package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type InsightRepository struct {
	mu         sync.RWMutex
	byIndustry map[string]insight.Insight
}

func NewInsightRepository(seed ...insight.Insight) *InsightRepository {
	r := &InsightRepository{byIndustry: make(map[string]insight.Insight, len(seed))}
	for _, item := range seed {
		r.byIndustry[item.Industry] = cloneInsight(item)
	}
	return r
}

func (r *InsightRepository) GetByIndustry(_ context.Context, industry string) (insight.Insight, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byIndustry[industry]
	if !ok {
		return insight.Insight{}, false, nil
	}
	return cloneInsight(item), true, nil
}

func (r *InsightRepository) Create(_ context.Context, item insight.Insight) (insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byIndustry[item.Industry]; exists {
		return insight.Insight{}, fmt.Errorf("%w: insight for industry %q", usecase.ErrConflict, item.Industry)
	}
	r.byIndustry[item.Industry] = cloneInsight(item)
	return cloneInsight(item), nil
}

func (r *InsightRepository) ListDue(_ context.Context, now time.Time, limit int) ([]insight.Insight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]insight.Insight, 0)
	for _, item := range r.byIndustry {
		if item.Due(now) {
			out = append(out, cloneInsight(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextUpdate.Equal(out[j].NextUpdate) {
			return out[i].NextUpdate.Before(out[j].NextUpdate)
		}
		return out[i].Industry < out[j].Industry
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InsightRepository) Replace(_ context.Context, item insight.Insight) (insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byIndustry[item.Industry]
	if !ok {
		return insight.Insight{}, fmt.Errorf("%w: insight for industry %q", usecase.ErrNotFound, item.Industry)
	}
	item.ID = current.ID
	r.byIndustry[item.Industry] = cloneInsight(item)
	return cloneInsight(item), nil
}

func cloneInsight(item insight.Insight) insight.Insight {
	copied := item
	copied.SalaryRanges = append([]insight.SalaryRange{}, item.SalaryRanges...)
	copied.TopSkills = append([]string{}, item.TopSkills...)
	copied.KeyTrends = append([]string{}, item.KeyTrends...)
	copied.RecommendedSkills = append([]string{}, item.RecommendedSkills...)
	return copied
}
