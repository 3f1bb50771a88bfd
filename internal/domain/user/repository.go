package user

import "context"

type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (Profile, bool, error)
	// Create inserts a new profile. A duplicate external id yields a conflict error.
	Create(ctx context.Context, profile Profile) (Profile, error)
	UpdateOnboarding(ctx context.Context, profileID string, update OnboardingUpdate) (Profile, error)
}

type IdentityProvider interface {
	FetchUser(ctx context.Context, externalID string) (ExternalIdentity, error)
}
