package usecase

import (
	"context"

	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

type ProfileStep string

const (
	ProfileStepEnsureProfile   ProfileStep = "ensure_profile"
	ProfileStepResolveInsight  ProfileStep = "resolve_insight"
	ProfileStepUpdateProfile   ProfileStep = "update_profile"
	ProfileStepInvalidateViews ProfileStep = "invalidate_views"
	ProfileStepStatusLookup    ProfileStep = "status_lookup"
)

// ProfileObserver receives progress and failures of the profile update
// workflow. Failures passed to it are the only place the underlying cause of
// ErrProfileUpdate is visible.
type ProfileObserver interface {
	StepCompleted(ctx context.Context, step ProfileStep, externalID string)
	StepFailed(ctx context.Context, step ProfileStep, externalID string, err error)
}

// LoggingProfileObserver reports failures at error level and, when verbose,
// each completed step at debug level.
type LoggingProfileObserver struct {
	logger  *logging.Logger
	verbose bool
}

func NewLoggingProfileObserver(logger *logging.Logger, verbose bool) *LoggingProfileObserver {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoggingProfileObserver{logger: logger, verbose: verbose}
}

func (o *LoggingProfileObserver) StepCompleted(ctx context.Context, step ProfileStep, externalID string) {
	if !o.verbose {
		return
	}
	o.logger.DebugContext(ctx, "profile update step completed", "step", string(step), "external_id", externalID)
}

func (o *LoggingProfileObserver) StepFailed(ctx context.Context, step ProfileStep, externalID string, err error) {
	o.logger.ErrorContext(ctx, "profile update step failed", "step", string(step), "external_id", externalID, "error", err)
}
