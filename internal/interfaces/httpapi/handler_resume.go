package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/career-coach/internal/usecase"
)

// GetResume returns the caller's resume; the envelope carries no data when none is saved.
func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResume")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	body, err := h.views.GetOrRender(ctx, usecase.ViewPathResume, session.ExternalID, func(ctx context.Context) ([]byte, error) {
		item, found, err := h.resumeService.Get(ctx, session)
		if err != nil {
			return nil, err
		}
		if !found {
			return encodeSuccess(nil)
		}
		return encodeSuccess(resumeToDTO(item))
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get resume failed", "external_id", session.ExternalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeRaw(ctx, w, http.StatusOK, body)
}

func (h *Handler) SaveResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveResume")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	var req saveResumeRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.resumeService.Save(ctx, session, req.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "save resume failed", "external_id", session.ExternalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resumeToDTO(item))
}
