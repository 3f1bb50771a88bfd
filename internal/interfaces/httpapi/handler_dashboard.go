package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/career-coach/internal/usecase"
)

func (h *Handler) GetDashboardInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboardInsights")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	body, err := h.views.GetOrRender(ctx, usecase.ViewPathDashboard, session.ExternalID, func(ctx context.Context) ([]byte, error) {
		item, err := h.dashboardService.IndustryInsights(ctx, session)
		if err != nil {
			return nil, err
		}
		return encodeSuccess(insightToDTO(item))
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard insights failed", "external_id", session.ExternalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeRaw(ctx, w, http.StatusOK, body)
}
