package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

func (h *Handler) ListCoverLetters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCoverLetters")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	body, err := h.views.GetOrRender(ctx, usecase.ViewPathCoverLetters, session.ExternalID, func(ctx context.Context) ([]byte, error) {
		letters, err := h.coverLetterService.List(ctx, session)
		if err != nil {
			return nil, err
		}
		items := make([]coverLetterDTO, 0, len(letters))
		for _, letter := range letters {
			items = append(items, coverLetterToDTO(letter, false))
		}
		return encodeSuccess(items)
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list cover letters failed", "external_id", session.ExternalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeRaw(ctx, w, http.StatusOK, body)
}

func (h *Handler) GenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateCoverLetter")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}

	var req generateCoverLetterRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	letter, err := h.coverLetterService.Generate(ctx, session, usecase.GenerateCoverLetterInput{
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate cover letter failed", "external_id", session.ExternalID, "company", req.CompanyName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, coverLetterToDTO(letter, true))
}

func (h *Handler) GetCoverLetter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCoverLetter")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}
	letterID, err := coverLetterIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	letter, err := h.coverLetterService.Get(ctx, session, letterID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, coverLetterToDTO(letter, true))
}

func (h *Handler) DeleteCoverLetter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCoverLetter")
	defer span.End()

	session, ok := h.sessionOrReject(ctx, w)
	if !ok {
		return
	}
	letterID, err := coverLetterIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.coverLetterService.Delete(ctx, session, letterID); err != nil {
		h.logger.WarnContext(ctx, "delete cover letter failed", "external_id", session.ExternalID, "cover_letter_id", letterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": letterID})
}

// coverLetterIDFromPath treats malformed ids as missing letters.
func coverLetterIDFromPath(r *http.Request) (string, error) {
	letterID := strings.TrimSpace(r.PathValue("id"))
	if !id.Valid(letterID) {
		return "", fmt.Errorf("%w: cover letter %q", usecase.ErrNotFound, letterID)
	}
	return letterID, nil
}
