package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type UserRepository struct {
	mu           sync.RWMutex
	byID         map[string]user.Profile
	idByExternal map[string]string
	now          func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:         make(map[string]user.Profile),
		idByExternal: make(map[string]string),
		now:          time.Now,
	}
}

func (r *UserRepository) GetByExternalID(_ context.Context, externalID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profileID, ok := r.idByExternal[externalID]
	if !ok {
		return user.Profile{}, false, nil
	}
	return cloneProfile(r.byID[profileID]), true, nil
}

func (r *UserRepository) Create(_ context.Context, profile user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.idByExternal[profile.ExternalID]; exists {
		return user.Profile{}, fmt.Errorf("%w: user with external id %s", usecase.ErrConflict, profile.ExternalID)
	}
	if _, exists := r.byID[profile.ID]; exists {
		return user.Profile{}, fmt.Errorf("%w: user id %s", usecase.ErrConflict, profile.ID)
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	stored := cloneProfile(profile)
	r.byID[profile.ID] = stored
	r.idByExternal[profile.ExternalID] = profile.ID
	return cloneProfile(stored), nil
}

func (r *UserRepository) UpdateOnboarding(_ context.Context, profileID string, update user.OnboardingUpdate) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.byID[profileID]
	if !ok {
		return user.Profile{}, fmt.Errorf("%w: user id %s", usecase.ErrNotFound, profileID)
	}
	profile.Industry = update.Industry
	profile.Experience = update.Experience
	profile.Bio = update.Bio
	profile.Skills = append([]string{}, update.Skills...)
	profile.UpdatedAt = r.now().UTC()

	r.byID[profileID] = profile
	return cloneProfile(profile), nil
}

func cloneProfile(p user.Profile) user.Profile {
	copied := p
	copied.Skills = append([]string{}, p.Skills...)
	return copied
}
