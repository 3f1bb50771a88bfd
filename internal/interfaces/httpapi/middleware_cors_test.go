package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://coach.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/insights", nil)
	req.Header.Set("Origin", "https://coach.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://coach.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/profile", nil)
	req.Header.Set("Origin", "https://coach.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/resume", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyListDisabled(t *testing.T) {
	handler := CORS([]string{" "}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/resume", nil)
	req.Header.Set("Origin", "https://any.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
