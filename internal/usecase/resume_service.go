package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/resume"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

const maxResumeContentLength = 50000

type ResumeService struct {
	profiles user.Repository
	resumes  resume.Repository
	views    ViewInvalidator
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewResumeService(
	profiles user.Repository,
	resumes resume.Repository,
	views ViewInvalidator,
	ids id.Generator,
	logger *logging.Logger,
) *ResumeService {
	if views == nil {
		views = noopViewInvalidator{}
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ResumeService{
		profiles: profiles,
		resumes:  resumes,
		views:    views,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the caller's resume; found is false when none was saved yet.
func (s *ResumeService) Get(ctx context.Context, session user.Session) (resume.Resume, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResumeService.Get")
	defer span.End()

	profile, err := s.requireProfile(ctx, session)
	if err != nil {
		return resume.Resume{}, false, err
	}
	return s.resumes.GetByUserID(ctx, profile.ID)
}

// Save replaces the caller's resume content, keeping its id across saves.
func (s *ResumeService) Save(ctx context.Context, session user.Session, content string) (resume.Resume, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResumeService.Save")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return resume.Resume{}, fmt.Errorf("%w: resume content is required", ErrInvalidInput)
	}
	if len(content) > maxResumeContentLength {
		return resume.Resume{}, fmt.Errorf("%w: resume content exceeds %d bytes", ErrInvalidInput, maxResumeContentLength)
	}

	profile, err := s.requireProfile(ctx, session)
	if err != nil {
		return resume.Resume{}, err
	}

	resumeID, err := s.ids.NewID()
	if err != nil {
		return resume.Resume{}, fmt.Errorf("generate resume id: %w", err)
	}
	now := s.now().UTC()
	saved, err := s.resumes.Upsert(ctx, resume.Resume{
		ID:        resumeID,
		UserID:    profile.ID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		recordSpanError(span, err)
		return resume.Resume{}, fmt.Errorf("upsert resume: %w", err)
	}

	if err := s.views.Invalidate(ctx, ViewPathResume); err != nil {
		s.logger.WarnContext(ctx, "invalidate resume view failed", "external_id", session.ExternalID, "error", err)
	}
	return saved, nil
}

func (s *ResumeService) requireProfile(ctx context.Context, session user.Session) (user.Profile, error) {
	return requireProfile(ctx, s.profiles, session)
}

// requireProfile resolves the local profile of an authenticated caller
// without provisioning it.
func requireProfile(ctx context.Context, profiles user.Repository, session user.Session) (user.Profile, error) {
	if !session.Authenticated() {
		return user.Profile{}, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}
	profile, found, err := profiles.GetByExternalID(ctx, session.ExternalID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile by external id: %w", err)
	}
	if !found {
		return user.Profile{}, fmt.Errorf("%w: user %s", ErrNotFound, session.ExternalID)
	}
	return profile, nil
}
