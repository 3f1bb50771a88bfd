package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrConflict              = errors.New("resource already exists")

	ErrIdentityLookup        = errors.New("identity lookup failed")
	ErrInsightGeneration     = errors.New("industry insight generation failed")
	ErrCoverLetterGeneration = errors.New("cover letter generation failed")
	ErrNotOnboarded          = errors.New("user has not completed onboarding")

	// ErrProfileUpdate is the only error UpdateProfile surfaces for workflow
	// failures; the cause is reported through the profile observer.
	ErrProfileUpdate = errors.New("failed to update profile")
)
