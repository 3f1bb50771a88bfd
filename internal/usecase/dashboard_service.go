package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/user"
)

type DashboardService struct {
	profiles user.Repository
	insights *InsightService
}

func NewDashboardService(profiles user.Repository, insights *InsightService) *DashboardService {
	return &DashboardService{profiles: profiles, insights: insights}
}

// IndustryInsights returns the insight for the caller's industry, generating
// it when the cache has no record yet.
func (s *DashboardService) IndustryInsights(ctx context.Context, session user.Session) (insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.IndustryInsights")
	defer span.End()

	if !session.Authenticated() {
		return insight.Insight{}, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}

	profile, found, err := s.profiles.GetByExternalID(ctx, session.ExternalID)
	if err != nil {
		recordSpanError(span, err)
		return insight.Insight{}, fmt.Errorf("get profile by external id: %w", err)
	}
	if !found || !profile.Onboarded() {
		return insight.Insight{}, fmt.Errorf("%w: external user %s", ErrNotOnboarded, session.ExternalID)
	}

	item, err := s.insights.GetOrCreate(ctx, profile.Industry)
	if err != nil {
		recordSpanError(span, err)
		return insight.Insight{}, err
	}
	return item, nil
}
