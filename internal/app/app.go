package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/career-coach/internal/config"
	"github.com/riskibarqy/career-coach/internal/infrastructure/account/clerk"
	"github.com/riskibarqy/career-coach/internal/infrastructure/llm/gemini"
	"github.com/riskibarqy/career-coach/internal/interfaces/httpapi"
	"github.com/riskibarqy/career-coach/internal/platform/id"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/viewcache"
	"github.com/riskibarqy/career-coach/internal/usecase"
	"go.uber.org/zap"
)

const sessionLeeway = 5 * time.Second

// Container holds the services shared by the API server and the refresh job.
type Container struct {
	Profile        *usecase.ProfileService
	Dashboard      *usecase.DashboardService
	Resume         *usecase.ResumeService
	CoverLetter    *usecase.CoverLetterService
	InsightRefresh *usecase.InsightRefreshService
	Views          *viewcache.Cache

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	llm, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		Timeout:        cfg.GeminiTimeout,
		RatePerMinute:  cfg.GeminiRatePerMinute,
		CircuitBreaker: cfg.GeminiCircuit,
	}, logger.Named("gemini"))
	if err != nil {
		_ = closeRepos()
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	identityProvider := clerk.NewClient(clerk.Config{
		BaseURL:        cfg.ClerkBaseURL,
		SecretKey:      cfg.ClerkSecretKey,
		Timeout:        cfg.ClerkTimeout,
		CircuitBreaker: cfg.ClerkCircuit,
	}, logger.Named("clerk"))

	ids := id.NewUUIDGenerator()
	views := viewcache.New(cfg.ViewCacheTTL)

	insights := usecase.NewInsightService(repos.insights, llm, ids, logger)
	identity := usecase.NewIdentityService(repos.users, identityProvider, ids, logger)
	observer := usecase.NewLoggingProfileObserver(logger, cfg.ProfileVerboseLogging)

	return &Container{
		Profile:        usecase.NewProfileService(identity, insights, repos.users, views, observer),
		Dashboard:      usecase.NewDashboardService(repos.users, insights),
		Resume:         usecase.NewResumeService(repos.users, repos.resumes, views, ids, logger),
		CoverLetter:    usecase.NewCoverLetterService(repos.users, repos.coverLetters, llm, views, ids, logger),
		InsightRefresh: usecase.NewInsightRefreshService(repos.insights, insights, logger),
		Views:          views,
		closers:        []func() error{closeRepos},
	}, nil
}

// Close releases storage handles. It is safe to call more than once.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, container *Container, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if cfg.ClerkJWTPublicKey == "" {
		return nil, fmt.Errorf("CLERK_JWT_PUBLIC_KEY is required to verify sessions")
	}

	verifier, err := clerk.NewSessionVerifier(clerk.SessionVerifierConfig{
		PublicKeyPEM:      cfg.ClerkJWTPublicKey,
		AuthorizedParties: cfg.ClerkAuthorizedParties,
		Leeway:            sessionLeeway,
	})
	if err != nil {
		return nil, fmt.Errorf("create session verifier: %w", err)
	}

	handler := httpapi.NewHandler(
		container.Profile,
		container.Dashboard,
		container.Resume,
		container.CoverLetter,
		container.Views,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ErrorLog:          zap.NewStdLog(logger.Zap().Named("http")),
	}, nil
}
