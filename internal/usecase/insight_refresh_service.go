package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"

	defaultRefreshWorkers = 4
	defaultRefreshBatch   = 100
)

type RefreshInput struct {
	Now        time.Time
	MaxWorkers int
	// Limit caps how many due insights one run regenerates.
	Limit int
}

type RefreshResult struct {
	DueCount     int                 `json:"due_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Industries   []RefreshTaskResult `json:"industries"`
}

type RefreshTaskResult struct {
	Industry   string    `json:"industry"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	NextUpdate time.Time `json:"next_update,omitzero"`
	DurationMs int64     `json:"duration_ms"`
}

// InsightRefreshService regenerates insights whose next update time has passed.
type InsightRefreshService struct {
	repo     insight.Repository
	insights *InsightService
	logger   *logging.Logger
}

func NewInsightRefreshService(repo insight.Repository, insights *InsightService, logger *logging.Logger) *InsightRefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InsightRefreshService{repo: repo, insights: insights, logger: logger}
}

// RefreshStale regenerates every due insight in a bounded worker pool. A
// failure for one industry keeps the old record and does not stop the run.
func (s *InsightRefreshService) RefreshStale(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightRefreshService.RefreshStale")
	defer span.End()

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRefreshBatch
	}

	due, err := s.repo.ListDue(ctx, now.UTC(), limit)
	if err != nil {
		recordSpanError(span, err)
		return RefreshResult{}, fmt.Errorf("list due insights: %w", err)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultRefreshWorkers
	}
	if len(due) > 0 && workerCount > len(due) {
		workerCount = len(due)
	}
	result := RefreshResult{DueCount: len(due), WorkerCount: workerCount, Industries: make([]RefreshTaskResult, 0, len(due))}
	if len(due) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers      sync.WaitGroup
		successCount atomic.Int32
		failedCount  atomic.Int32
		results      = make(chan RefreshTaskResult, len(due))
	)
	for _, item := range due {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{Industry: item.Industry, Status: refreshStatusSuccess}
			refreshed, err := s.refreshOne(ctx, item)
			if err != nil {
				row.Status = refreshStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "refresh industry insight failed", "industry", item.Industry, "error", err)
			} else {
				row.NextUpdate = refreshed.NextUpdate
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit refresh task: %w", err)
		}
	}

	workers.Wait()
	close(results)
	for row := range results {
		result.Industries = append(result.Industries, row)
	}
	sort.SliceStable(result.Industries, func(i, j int) bool {
		return result.Industries[i].Industry < result.Industries[j].Industry
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "industry insight refresh finished",
		"due", result.DueCount, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func (s *InsightRefreshService) refreshOne(ctx context.Context, current insight.Insight) (insight.Insight, error) {
	fresh, err := s.insights.generate(ctx, current.Industry)
	if err != nil {
		return insight.Insight{}, err
	}
	fresh.ID = current.ID

	replaced, err := s.repo.Replace(ctx, fresh)
	if err != nil {
		return insight.Insight{}, fmt.Errorf("replace insight: %w", err)
	}
	return replaced, nil
}
