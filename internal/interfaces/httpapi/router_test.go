package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/viewcache"
	"github.com/riskibarqy/career-coach/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]user.Session

func (v stubVerifier) Verify(_ context.Context, token string) (user.Session, error) {
	session, ok := v[token]
	if !ok {
		return user.Session{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return session, nil
}

type stubProvider struct{}

func (stubProvider) FetchUser(_ context.Context, externalID string) (user.ExternalIdentity, error) {
	return user.ExternalIdentity{ExternalID: externalID, Email: externalID + "@example.com", Name: "Test"}, nil
}

type stubGenerator struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (g *stubGenerator) Generate(_ context.Context, industry string) (insight.Generated, error) {
	g.calls.Add(1)
	if g.fail.Load() {
		return insight.Generated{}, errors.New("model unavailable")
	}
	return insight.Generated{
		SalaryRanges:  []insight.SalaryRange{{Role: "Engineer", Min: 1, Max: 3, Median: 2, Location: "Remote"}},
		GrowthRate:    4.5,
		DemandLevel:   "high",
		TopSkills:     []string{"Go"},
		MarketOutlook: "Positive",
		KeyTrends:     []string{industry + " automation"},
	}, nil
}

type stubWriter struct{}

func (stubWriter) Write(_ context.Context, req coverletter.Request) (string, error) {
	return "Dear " + req.CompanyName + ",\n\nHire me.", nil
}

type testServer struct {
	router    http.Handler
	views     *viewcache.Cache
	generator *stubGenerator
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	logger := logging.NewNop()
	profiles := memory.NewUserRepository()
	insights := memory.NewInsightRepository()
	views := viewcache.New(time.Minute)
	generator := &stubGenerator{}

	identityService := usecase.NewIdentityService(profiles, stubProvider{}, nil, logger)
	insightService := usecase.NewInsightService(insights, generator, nil, logger)
	handler := NewHandler(
		usecase.NewProfileService(identityService, insightService, profiles, views, usecase.NewLoggingProfileObserver(logger, false)),
		usecase.NewDashboardService(profiles, insightService),
		usecase.NewResumeService(profiles, memory.NewResumeRepository(), views, nil, logger),
		usecase.NewCoverLetterService(profiles, memory.NewCoverLetterRepository(), stubWriter{}, views, nil, logger),
		views,
		logger,
	)

	verifier := stubVerifier{
		"token-ada": {ExternalID: "user_ada", SessionID: "sess_1"},
		"token-bob": {ExternalID: "user_bob", SessionID: "sess_2"},
	}
	return testServer{
		router:    NewRouter(handler, verifier, logger, RouterConfig{ServiceName: "test"}),
		views:     views,
		generator: generator,
	}
}

func (s testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s testServer) onboard(t *testing.T, token string) {
	t.Helper()
	rec := s.do(t, http.MethodPut, "/v1/profile", token, `{"industry":"tech-software","experience":5,"bio":"builder","skills":["Go"," SQL ",""]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_OnboardingStatusNeverFails(t *testing.T) {
	srv := newTestServer(t)

	for _, token := range []string{"", "unknown-token", "token-ada"} {
		rec := srv.do(t, http.MethodGet, "/v1/onboarding/status", token, "")
		require.Equal(t, http.StatusOK, rec.Code, "token %q", token)
		body := decodeEnvelope[onboardingStatusDTO](t, rec)
		assert.False(t, body.Data.IsOnboarded, "token %q", token)
	}

	srv.onboard(t, "token-ada")

	rec := srv.do(t, http.MethodGet, "/v1/onboarding/status", "token-ada", "")
	assert.True(t, decodeEnvelope[onboardingStatusDTO](t, rec).Data.IsOnboarded)

	rec = srv.do(t, http.MethodGet, "/v1/onboarding/status", "token-bob", "")
	assert.False(t, decodeEnvelope[onboardingStatusDTO](t, rec).Data.IsOnboarded)
}

func TestRouter_UpdateProfile(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, "/v1/profile", "", `{"industry":"tech-software"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPut, "/v1/profile", "token-ada", `{"industry":"tech-software","experience":5,"bio":"builder","skills":["Go"," SQL ",""]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeEnvelope[profileDTO](t, rec).Data
	assert.Equal(t, "tech-software", profile.Industry)
	assert.Equal(t, 5, profile.Experience)
	assert.Equal(t, "builder", profile.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	assert.Equal(t, "user_ada@example.com", profile.Email)
	assert.True(t, profile.Onboarded)
	assert.Equal(t, int32(1), srv.generator.calls.Load())

	// A second user in the same industry reuses the stored insight.
	srv.onboard(t, "token-bob")
	assert.Equal(t, int32(1), srv.generator.calls.Load())
}

func TestRouter_UpdateProfileValidation(t *testing.T) {
	srv := newTestServer(t)

	bodies := []string{
		`{"experience":3}`,
		`{"industry":"x","experience":51}`,
		`{"industry":"x","experience":-1}`,
		`{"industry":"x","bio":"` + strings.Repeat("a", 501) + `"}`,
		`{"industry":"x","unexpected":true}`,
		`not json`,
	}
	for _, body := range bodies {
		rec := srv.do(t, http.MethodPut, "/v1/profile", "token-ada", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, int32(0), srv.generator.calls.Load())
}

func TestRouter_UpdateProfileFailureIsGeneric(t *testing.T) {
	srv := newTestServer(t)
	srv.generator.fail.Store(true)

	rec := srv.do(t, http.MethodPut, "/v1/profile", "token-ada", `{"industry":"finance"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeEnvelope[any](t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "failed to update profile", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "model unavailable")
}

func TestRouter_DashboardInsights(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/dashboard/insights", "token-ada", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	srv.onboard(t, "token-ada")

	rec = srv.do(t, http.MethodGet, "/v1/dashboard/insights", "token-ada", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	item := decodeEnvelope[insightDTO](t, rec).Data
	assert.Equal(t, "tech-software", item.Industry)
	assert.Equal(t, "HIGH", item.DemandLevel)
	assert.Equal(t, "POSITIVE", item.MarketOutlook)
	require.Len(t, item.SalaryRanges, 1)
	assert.Equal(t, 1, srv.views.Len())

	// Profile updates invalidate every cached view.
	srv.onboard(t, "token-ada")
	assert.Equal(t, 0, srv.views.Len())
}

func TestRouter_Resume(t *testing.T) {
	srv := newTestServer(t)
	srv.onboard(t, "token-ada")

	rec := srv.do(t, http.MethodGet, "/v1/resume", "token-ada", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"data"`)

	rec = srv.do(t, http.MethodPut, "/v1/resume", "token-ada", `{"content":"# Ada\n\nEngineer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/v1/resume", "token-ada", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Ada\n\nEngineer", decodeEnvelope[resumeDTO](t, rec).Data.Content)

	rec = srv.do(t, http.MethodPut, "/v1/resume", "token-ada", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CoverLetters(t *testing.T) {
	srv := newTestServer(t)
	srv.onboard(t, "token-ada")
	srv.onboard(t, "token-bob")

	rec := srv.do(t, http.MethodGet, "/v1/cover-letters", "token-ada", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeEnvelope[[]coverLetterDTO](t, rec).Data)

	rec = srv.do(t, http.MethodPost, "/v1/cover-letters", "token-ada", `{"job_title":"Engineer","company_name":"Acme","job_description":"Build things"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope[coverLetterDTO](t, rec).Data
	assert.Equal(t, "completed", created.Status)
	assert.Contains(t, created.Content, "Dear Acme")

	rec = srv.do(t, http.MethodGet, "/v1/cover-letters", "token-ada", "")
	list := decodeEnvelope[[]coverLetterDTO](t, rec).Data
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Empty(t, list[0].Content)

	rec = srv.do(t, http.MethodGet, "/v1/cover-letters/"+created.ID, "token-ada", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/cover-letters/"+created.ID, "token-bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/cover-letters/not-a-uuid", "token-ada", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/v1/cover-letters/"+created.ID, "token-bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/v1/cover-letters/"+created.ID, "token-ada", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/cover-letters/"+created.ID, "token-ada", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/cover-letters", "token-ada", `{"job_title":"Engineer"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
