package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/insight"
	basecache "github.com/riskibarqy/career-coach/internal/platform/cache"
)

const insightKeyPrefix = "insight:industry:"

type cachedInsight struct {
	value  insight.Insight
	exists bool
}

// InsightRepository caches industry lookups in front of another repository.
// Misses are not retained, so a record created by another process becomes
// visible on the next lookup.
type InsightRepository struct {
	next  insight.Repository
	cache *basecache.Store[cachedInsight]
}

func NewInsightRepository(next insight.Repository, ttl time.Duration) *InsightRepository {
	return &InsightRepository{next: next, cache: basecache.NewStore[cachedInsight](ttl)}
}

func (r *InsightRepository) GetByIndustry(ctx context.Context, industry string) (insight.Insight, bool, error) {
	key := insightKeyPrefix + industry
	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedInsight, error) {
		item, exists, err := r.next.GetByIndustry(ctx, industry)
		if err != nil {
			return cachedInsight{}, err
		}
		return cachedInsight{value: item, exists: exists}, nil
	})
	if err != nil {
		return insight.Insight{}, false, err
	}
	if !cached.exists {
		r.cache.Delete(ctx, key)
		return insight.Insight{}, false, nil
	}
	return cloneInsight(cached.value), true, nil
}

func (r *InsightRepository) Create(ctx context.Context, item insight.Insight) (insight.Insight, error) {
	defer r.cache.Delete(ctx, insightKeyPrefix+item.Industry)
	return r.next.Create(ctx, item)
}

func (r *InsightRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]insight.Insight, error) {
	return r.next.ListDue(ctx, now, limit)
}

func (r *InsightRepository) Replace(ctx context.Context, item insight.Insight) (insight.Insight, error) {
	defer r.cache.Delete(ctx, insightKeyPrefix+item.Industry)
	return r.next.Replace(ctx, item)
}

func cloneInsight(item insight.Insight) insight.Insight {
	copied := item
	copied.SalaryRanges = append([]insight.SalaryRange(nil), item.SalaryRanges...)
	copied.TopSkills = append([]string(nil), item.TopSkills...)
	copied.KeyTrends = append([]string(nil), item.KeyTrends...)
	copied.RecommendedSkills = append([]string(nil), item.RecommendedSkills...)
	return copied
}
