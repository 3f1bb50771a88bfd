package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "career-coach"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Expose reports whether err.Error() may be returned to the caller.
	Expose bool
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeRaw(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	_, span := startSpan(ctx, "httpapi.writeRaw")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// encodeSuccess renders a success envelope for the view cache.
func encodeSuccess(data any) ([]byte, error) {
	return sonic.Marshal(googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	message := internalMessage
	if mapped.Expose {
		message = err.Error()
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrProfileUpdate):
		// The workflow returns the bare sentinel; details stay in the logs.
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "profileUpdateFailed", Status: "INTERNAL", Expose: true}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT", Expose: true}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED", Expose: true}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND", Expose: true}
	case errors.Is(err, usecase.ErrNotOnboarded):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "notOnboarded", Status: "FAILED_PRECONDITION", Expose: true}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED", Expose: true}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE", Expose: true}
	case errors.Is(err, usecase.ErrInsightGeneration),
		errors.Is(err, usecase.ErrCoverLetterGeneration),
		errors.Is(err, usecase.ErrIdentityLookup):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamFailed", Status: "UNAVAILABLE", Expose: true}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
