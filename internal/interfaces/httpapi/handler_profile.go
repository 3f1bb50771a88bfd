package httpapi

import (
	"net/http"

	"github.com/riskibarqy/career-coach/internal/usecase"
)

func (h *Handler) GetOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOnboardingStatus")
	defer span.End()

	// Anonymous callers get the zero session and therefore false.
	session, _ := sessionFromContext(ctx)
	status := h.profileService.GetOnboardingStatus(ctx, session)

	writeSuccess(ctx, w, http.StatusOK, onboardingStatusDTO{IsOnboarded: status.IsOnboarded})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProfile")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(ctx, session, usecase.UpdateProfileInput{
		Industry:   req.Industry,
		Experience: req.Experience,
		Bio:        req.Bio,
		Skills:     req.Skills,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}
