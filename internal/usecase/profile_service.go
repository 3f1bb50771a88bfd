package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/career-coach/internal/domain/user"
	"go.opentelemetry.io/otel/attribute"
)

// View paths invalidated after writes.
const (
	ViewPathRoot         = "/"
	ViewPathDashboard    = "/dashboard"
	ViewPathResume       = "/resume"
	ViewPathCoverLetters = "/ai-cover-letter"
)

type ViewInvalidator interface {
	Invalidate(ctx context.Context, path string) error
}

type noopViewInvalidator struct{}

func (noopViewInvalidator) Invalidate(context.Context, string) error { return nil }

type UpdateProfileInput struct {
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

type OnboardingStatus struct {
	IsOnboarded bool
}

// ProfileService runs the onboarding/profile-edit workflow and answers
// onboarding status checks.
type ProfileService struct {
	identity *IdentityService
	insights *InsightService
	profiles user.Repository
	views    ViewInvalidator
	observer ProfileObserver
}

func NewProfileService(
	identity *IdentityService,
	insights *InsightService,
	profiles user.Repository,
	views ViewInvalidator,
	observer ProfileObserver,
) *ProfileService {
	if views == nil {
		views = noopViewInvalidator{}
	}
	if observer == nil {
		observer = NewLoggingProfileObserver(nil, false)
	}

	return &ProfileService{
		identity: identity,
		insights: insights,
		profiles: profiles,
		views:    views,
		observer: observer,
	}
}

// UpdateProfile provisions the caller's profile if needed, makes sure an
// insight exists for the chosen industry, then writes the onboarding fields.
// Steps are not atomic: an insight created before a failed profile write stays.
func (s *ProfileService) UpdateProfile(ctx context.Context, session user.Session, input UpdateProfileInput) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateProfile",
		attribute.String("user.external_id", session.ExternalID),
		attribute.String("profile.industry", input.Industry))
	defer span.End()

	if !session.Authenticated() {
		return user.Profile{}, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}
	externalID := strings.TrimSpace(session.ExternalID)

	profile, err := s.identity.EnsureProfileExists(ctx, externalID)
	if err != nil {
		return user.Profile{}, s.fail(ctx, ProfileStepEnsureProfile, externalID, err)
	}
	s.observer.StepCompleted(ctx, ProfileStepEnsureProfile, externalID)

	industry := strings.TrimSpace(input.Industry)
	if _, err := s.insights.GetOrCreate(ctx, industry); err != nil {
		return user.Profile{}, s.fail(ctx, ProfileStepResolveInsight, externalID, err)
	}
	s.observer.StepCompleted(ctx, ProfileStepResolveInsight, externalID)

	updated, err := s.profiles.UpdateOnboarding(ctx, profile.ID, user.OnboardingUpdate{
		Industry:   industry,
		Experience: input.Experience,
		Bio:        input.Bio,
		Skills:     normalizeSkills(input.Skills),
	})
	if err != nil {
		return user.Profile{}, s.fail(ctx, ProfileStepUpdateProfile, externalID, err)
	}
	s.observer.StepCompleted(ctx, ProfileStepUpdateProfile, externalID)

	// The profile is committed at this point; stale views expire on their own.
	if err := s.views.Invalidate(ctx, ViewPathRoot); err != nil {
		s.observer.StepFailed(ctx, ProfileStepInvalidateViews, externalID, err)
	} else {
		s.observer.StepCompleted(ctx, ProfileStepInvalidateViews, externalID)
	}

	return updated, nil
}

func (s *ProfileService) fail(ctx context.Context, step ProfileStep, externalID string, err error) error {
	s.observer.StepFailed(ctx, step, externalID, err)
	return ErrProfileUpdate
}

// GetOnboardingStatus reports whether the caller has a profile with an
// industry. Lookup failures are reported as not onboarded.
func (s *ProfileService) GetOnboardingStatus(ctx context.Context, session user.Session) OnboardingStatus {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetOnboardingStatus")
	defer span.End()

	if !session.Authenticated() {
		return OnboardingStatus{}
	}

	profile, found, err := s.profiles.GetByExternalID(ctx, strings.TrimSpace(session.ExternalID))
	if err != nil {
		recordSpanError(span, err)
		s.observer.StepFailed(ctx, ProfileStepStatusLookup, session.ExternalID, err)
		return OnboardingStatus{}
	}
	if !found {
		return OnboardingStatus{}
	}
	return OnboardingStatus{IsOnboarded: profile.Onboarded()}
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		out = append(out, skill)
	}
	return out
}
