package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// IdentityService provisions local profiles from the external identity provider.
type IdentityService struct {
	profiles user.Repository
	provider user.IdentityProvider
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewIdentityService(
	profiles user.Repository,
	provider user.IdentityProvider,
	ids id.Generator,
	logger *logging.Logger,
) *IdentityService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IdentityService{
		profiles: profiles,
		provider: provider,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureProfileExists returns the profile for externalID, creating it from the
// identity provider's record on first sight. Concurrent first requests for the
// same user converge on a single row.
func (s *IdentityService) EnsureProfileExists(ctx context.Context, externalID string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.EnsureProfileExists",
		attribute.String("user.external_id", externalID))
	defer span.End()

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return user.Profile{}, fmt.Errorf("%w: external user id is required", ErrInvalidInput)
	}

	existing, found, err := s.profiles.GetByExternalID(ctx, externalID)
	if err != nil {
		recordSpanError(span, err)
		return user.Profile{}, fmt.Errorf("get profile by external id: %w", err)
	}
	if found {
		return existing, nil
	}

	identity, err := s.provider.FetchUser(ctx, externalID)
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, ErrIdentityLookup) {
			return user.Profile{}, err
		}
		return user.Profile{}, fmt.Errorf("%w: fetch user %s: %w", ErrIdentityLookup, externalID, err)
	}
	identity = identity.WithDefaults()

	profileID, err := s.ids.NewID()
	if err != nil {
		return user.Profile{}, fmt.Errorf("generate profile id: %w", err)
	}

	now := s.now().UTC()
	created, err := s.profiles.Create(ctx, user.Profile{
		ID:         profileID,
		ExternalID: externalID,
		Email:      identity.Email,
		Name:       identity.Name,
		ImageURL:   identity.ImageURL,
		Skills:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "profile provisioned", "external_id", externalID, "profile_id", created.ID)
		return created, nil
	case errors.Is(err, ErrConflict):
		// Lost the insert race; the winner's row is authoritative.
		winner, found, getErr := s.profiles.GetByExternalID(ctx, externalID)
		if getErr != nil {
			return user.Profile{}, fmt.Errorf("re-read profile after conflict: %w", getErr)
		}
		if !found {
			return user.Profile{}, fmt.Errorf("profile for %s vanished after conflict: %w", externalID, err)
		}
		return winner, nil
	default:
		recordSpanError(span, err)
		return user.Profile{}, fmt.Errorf("create profile: %w", err)
	}
}

// Lookup returns the local profile without contacting the identity provider.
func (s *IdentityService) Lookup(ctx context.Context, externalID string) (user.Profile, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return user.Profile{}, false, nil
	}
	return s.profiles.GetByExternalID(ctx, externalID)
}
