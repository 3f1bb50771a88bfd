package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

type GenerateCoverLetterInput struct {
	JobTitle       string
	CompanyName    string
	JobDescription string
}

type CoverLetterService struct {
	profiles user.Repository
	letters  coverletter.Repository
	writer   coverletter.Writer
	views    ViewInvalidator
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewCoverLetterService(
	profiles user.Repository,
	letters coverletter.Repository,
	writer coverletter.Writer,
	views ViewInvalidator,
	ids id.Generator,
	logger *logging.Logger,
) *CoverLetterService {
	if views == nil {
		views = noopViewInvalidator{}
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &CoverLetterService{
		profiles: profiles,
		letters:  letters,
		writer:   writer,
		views:    views,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CoverLetterService) Generate(ctx context.Context, session user.Session, input GenerateCoverLetterInput) (coverletter.CoverLetter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoverLetterService.Generate")
	defer span.End()

	input.JobTitle = strings.TrimSpace(input.JobTitle)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.JobDescription = strings.TrimSpace(input.JobDescription)
	if input.JobTitle == "" || input.CompanyName == "" || input.JobDescription == "" {
		return coverletter.CoverLetter{}, fmt.Errorf("%w: job title, company name and job description are required", ErrInvalidInput)
	}

	profile, err := requireProfile(ctx, s.profiles, session)
	if err != nil {
		return coverletter.CoverLetter{}, err
	}

	content, err := s.writer.Write(ctx, coverletter.Request{
		JobTitle:       input.JobTitle,
		CompanyName:    input.CompanyName,
		JobDescription: input.JobDescription,
		Industry:       profile.Industry,
		Experience:     profile.Experience,
		Skills:         profile.Skills,
		Bio:            profile.Bio,
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, ErrCoverLetterGeneration) {
			return coverletter.CoverLetter{}, err
		}
		return coverletter.CoverLetter{}, fmt.Errorf("%w: %w", ErrCoverLetterGeneration, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return coverletter.CoverLetter{}, fmt.Errorf("%w: writer returned empty content", ErrCoverLetterGeneration)
	}

	letterID, err := s.ids.NewID()
	if err != nil {
		return coverletter.CoverLetter{}, fmt.Errorf("generate cover letter id: %w", err)
	}
	now := s.now().UTC()
	created, err := s.letters.Create(ctx, coverletter.CoverLetter{
		ID:             letterID,
		UserID:         profile.ID,
		Content:        content,
		JobDescription: input.JobDescription,
		CompanyName:    input.CompanyName,
		JobTitle:       input.JobTitle,
		Status:         coverletter.StatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		recordSpanError(span, err)
		return coverletter.CoverLetter{}, fmt.Errorf("create cover letter: %w", err)
	}

	s.invalidate(ctx, session)
	return created, nil
}

// Get returns one of the caller's cover letters; letters owned by other users
// are reported as not found.
func (s *CoverLetterService) Get(ctx context.Context, session user.Session, letterID string) (coverletter.CoverLetter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoverLetterService.Get")
	defer span.End()

	profile, err := requireProfile(ctx, s.profiles, session)
	if err != nil {
		return coverletter.CoverLetter{}, err
	}
	letterID = strings.TrimSpace(letterID)
	if letterID == "" {
		return coverletter.CoverLetter{}, fmt.Errorf("%w: cover letter id is required", ErrInvalidInput)
	}

	item, found, err := s.letters.GetByID(ctx, profile.ID, letterID)
	if err != nil {
		return coverletter.CoverLetter{}, fmt.Errorf("get cover letter: %w", err)
	}
	if !found {
		return coverletter.CoverLetter{}, fmt.Errorf("%w: cover letter %s", ErrNotFound, letterID)
	}
	return item, nil
}

// List returns the caller's cover letters, newest first.
func (s *CoverLetterService) List(ctx context.Context, session user.Session) ([]coverletter.CoverLetter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoverLetterService.List")
	defer span.End()

	profile, err := requireProfile(ctx, s.profiles, session)
	if err != nil {
		return nil, err
	}
	items, err := s.letters.ListByUserID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list cover letters: %w", err)
	}
	return items, nil
}

func (s *CoverLetterService) Delete(ctx context.Context, session user.Session, letterID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoverLetterService.Delete")
	defer span.End()

	profile, err := requireProfile(ctx, s.profiles, session)
	if err != nil {
		return err
	}
	deleted, err := s.letters.Delete(ctx, profile.ID, strings.TrimSpace(letterID))
	if err != nil {
		return fmt.Errorf("delete cover letter: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: cover letter %s", ErrNotFound, letterID)
	}

	s.invalidate(ctx, session)
	return nil
}

func (s *CoverLetterService) invalidate(ctx context.Context, session user.Session) {
	if err := s.views.Invalidate(ctx, ViewPathCoverLetters); err != nil {
		s.logger.WarnContext(ctx, "invalidate cover letter view failed", "external_id", session.ExternalID, "error", err)
	}
}
