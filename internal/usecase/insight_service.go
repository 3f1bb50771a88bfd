package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// InsightService owns the shared per-industry insight cache.
type InsightService struct {
	repo      insight.Repository
	generator insight.Generator
	ids       id.Generator
	logger    *logging.Logger
	flight    resilience.Group[insight.Insight]
	now       func() time.Time
}

func NewInsightService(
	repo insight.Repository,
	generator insight.Generator,
	ids id.Generator,
	logger *logging.Logger,
) *InsightService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &InsightService{
		repo:      repo,
		generator: generator,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

// GetOrCreate returns the insight for industry, generating and storing it when
// none exists. An existing record is returned as-is even when stale.
func (s *InsightService) GetOrCreate(ctx context.Context, industry string) (insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.GetOrCreate",
		attribute.String("insight.industry", industry))
	defer span.End()

	industry = strings.TrimSpace(industry)
	if industry == "" {
		return insight.Insight{}, fmt.Errorf("%w: industry is required", ErrInvalidInput)
	}

	existing, found, err := s.repo.GetByIndustry(ctx, industry)
	if err != nil {
		recordSpanError(span, err)
		return insight.Insight{}, fmt.Errorf("get insight by industry: %w", err)
	}
	if found {
		return existing, nil
	}

	// Collapse concurrent misses for one industry inside this process; the
	// unique constraint covers racing processes. The shared call outlives any
	// single caller and is bounded by the generator's own timeout.
	item, err, _ := s.flight.Do(ctx, industry, func(flightCtx context.Context) (insight.Insight, error) {
		return s.generateAndStore(flightCtx, industry)
	})
	if err != nil {
		recordSpanError(span, err)
		return insight.Insight{}, err
	}
	return item, nil
}

func (s *InsightService) generateAndStore(ctx context.Context, industry string) (insight.Insight, error) {
	existing, found, err := s.repo.GetByIndustry(ctx, industry)
	if err != nil {
		return insight.Insight{}, fmt.Errorf("re-read insight by industry: %w", err)
	}
	if found {
		return existing, nil
	}

	item, err := s.generate(ctx, industry)
	if err != nil {
		return insight.Insight{}, err
	}

	created, err := s.repo.Create(ctx, item)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "industry insight created", "industry", industry, "next_update", created.NextUpdate)
		return created, nil
	case errors.Is(err, ErrConflict):
		winner, found, getErr := s.repo.GetByIndustry(ctx, industry)
		if getErr != nil {
			return insight.Insight{}, fmt.Errorf("re-read insight after conflict: %w", getErr)
		}
		if !found {
			return insight.Insight{}, fmt.Errorf("insight for %q vanished after conflict: %w", industry, err)
		}
		return winner, nil
	default:
		return insight.Insight{}, fmt.Errorf("create insight: %w", err)
	}
}

// generate asks the generator for a fresh payload and normalizes it. The
// returned insight carries a new id and timestamps but is not persisted.
func (s *InsightService) generate(ctx context.Context, industry string) (insight.Insight, error) {
	payload, err := s.generator.Generate(ctx, industry)
	if err != nil {
		if errors.Is(err, ErrInsightGeneration) {
			return insight.Insight{}, err
		}
		return insight.Insight{}, fmt.Errorf("%w: industry %q: %w", ErrInsightGeneration, industry, err)
	}

	item, err := insight.Build(industry, payload, s.now().UTC())
	if err != nil {
		return insight.Insight{}, fmt.Errorf("%w: industry %q: %w", ErrInsightGeneration, industry, err)
	}

	item.ID, err = s.ids.NewID()
	if err != nil {
		return insight.Insight{}, fmt.Errorf("generate insight id: %w", err)
	}
	return item, nil
}
