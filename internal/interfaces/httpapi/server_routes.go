package httpapi

import (
	"net/http"

	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerOnboardingRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier, logger *logging.Logger) {
	// Status never fails: an absent or invalid session reads as not onboarded.
	mux.Handle("GET /v1/onboarding/status", OptionalSession(verifier, logger, http.HandlerFunc(handler.GetOnboardingStatus)))
}

func registerProfileRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("PUT /v1/profile", RequireSession(verifier, http.HandlerFunc(handler.UpdateProfile)))
	mux.Handle("GET /v1/dashboard/insights", RequireSession(verifier, http.HandlerFunc(handler.GetDashboardInsights)))
}

func registerContentRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/resume", RequireSession(verifier, http.HandlerFunc(handler.GetResume)))
	mux.Handle("PUT /v1/resume", RequireSession(verifier, http.HandlerFunc(handler.SaveResume)))
	mux.Handle("GET /v1/cover-letters", RequireSession(verifier, http.HandlerFunc(handler.ListCoverLetters)))
	mux.Handle("POST /v1/cover-letters", RequireSession(verifier, http.HandlerFunc(handler.GenerateCoverLetter)))
	mux.Handle("GET /v1/cover-letters/{id}", RequireSession(verifier, http.HandlerFunc(handler.GetCoverLetter)))
	mux.Handle("DELETE /v1/cover-letters/{id}", RequireSession(verifier, http.HandlerFunc(handler.DeleteCoverLetter)))
}
