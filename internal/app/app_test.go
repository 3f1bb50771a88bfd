package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/career-coach/internal/config"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "career-coach-test",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		ViewCacheTTL:       time.Minute,
		CORSAllowedOrigins: []string{"https://app.example.com"},
		ClerkBaseURL:       "http://127.0.0.1:1",
		ClerkJWTPublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
		ClerkTimeout:       time.Second,
		ClerkCircuit:       resilience.DefaultCircuitBreakerConfig(),
		GeminiAPIKey:       "test-key",
		GeminiModel:        "gemini-1.5-flash",
		GeminiTimeout:      time.Second,
		GeminiCircuit:      resilience.DefaultCircuitBreakerConfig(),
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	cfg := testConfig(t)

	container, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, container.Close()) })

	server, err := NewHTTPServer(cfg, container, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, cfg.HTTPAddr, server.Addr)
	assert.NotNil(t, server.ErrorLog)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/insights", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewHTTPServer_RequiresSessionKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClerkJWTPublicKey = ""

	container, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	_, err = NewHTTPServer(cfg, container, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLERK_JWT_PUBLIC_KEY")
}

func TestNew_UnsupportedStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "sqlite"

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestContainerClose_Idempotent(t *testing.T) {
	calls := 0
	c := &Container{closers: []func() error{func() error { calls++; return nil }}}

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, calls)

	var nilContainer *Container
	assert.NoError(t, nilContainer.Close())
}
