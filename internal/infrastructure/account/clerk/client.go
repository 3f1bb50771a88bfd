package clerk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/resilience"
	"github.com/riskibarqy/career-coach/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.clerk.com"
	usersPath      = "/v1/users/"
	maxBodySize    = 1 << 20
)

var errClerkTransient = crerr.New("clerk transient failure")

type Config struct {
	BaseURL        string
	SecretKey      string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads user records from the Clerk backend API.
type Client struct {
	http      *fasthttp.Client
	baseURL   string
	secretKey string
	timeout   time.Duration
	breaker   *resilience.CircuitBreaker
	flight    resilience.Group[user.ExternalIdentity]
	logger    *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("clerk circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		http: &fasthttp.Client{
			Name:                "career-coach",
			MaxResponseBodySize: maxBodySize,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		secretKey: strings.TrimSpace(cfg.SecretKey),
		timeout:   timeout,
		breaker:   breaker,
		logger:    logger,
	}
}

// FetchUser returns the identity fields for externalID. Every failure wraps
// usecase.ErrIdentityLookup; transport errors and 5xx responses also wrap
// usecase.ErrDependencyUnavailable.
func (c *Client) FetchUser(ctx context.Context, externalID string) (user.ExternalIdentity, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return user.ExternalIdentity{}, fmt.Errorf("%w: %w: external user id is required", usecase.ErrIdentityLookup, usecase.ErrInvalidInput)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String("clerk.user_id", externalID))
	}

	identity, err, shared := c.flight.Do(ctx, externalID, func(flightCtx context.Context) (user.ExternalIdentity, error) {
		var out user.ExternalIdentity
		callErr := c.breaker.Execute(func() error {
			var fetchErr error
			out, fetchErr = c.fetch(flightCtx, externalID)
			return fetchErr
		}, isCircuitFailure)
		return out, callErr
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return user.ExternalIdentity{}, fmt.Errorf("%w: %w", usecase.ErrIdentityLookup, err)
		}
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "clerk circuit breaker rejected request", "state", string(c.breaker.State()))
			return user.ExternalIdentity{}, fmt.Errorf("%w: %w: clerk is temporarily unavailable: %w",
				usecase.ErrIdentityLookup, usecase.ErrDependencyUnavailable, err)
		}
		return user.ExternalIdentity{}, err
	}
	if shared {
		c.logger.DebugContext(ctx, "clerk user lookup shared with in-flight request", "external_id", externalID)
	}
	return identity, nil
}

func (c *Client) fetch(ctx context.Context, externalID string) (user.ExternalIdentity, error) {
	if err := ctx.Err(); err != nil {
		return user.ExternalIdentity{}, fmt.Errorf("%w: %w", usecase.ErrIdentityLookup, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + usersPath + externalID)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.secretKey)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return user.ExternalIdentity{}, crerr.Mark(
			fmt.Errorf("%w: %w: request clerk user %s: %v", usecase.ErrIdentityLookup, usecase.ErrDependencyUnavailable, externalID, err),
			errClerkTransient,
		)
	}

	status := resp.StatusCode()
	c.logger.DebugContext(ctx, "clerk user lookup", "external_id", externalID, "status_code", status, "duration", time.Since(start))

	if status < 200 || status > 299 {
		detail := truncate(strings.TrimSpace(string(resp.Body())), 512)
		if isRetryableStatus(status) {
			return user.ExternalIdentity{}, crerr.Mark(
				fmt.Errorf("%w: %w: clerk status=%d body=%s", usecase.ErrIdentityLookup, usecase.ErrDependencyUnavailable, status, detail),
				errClerkTransient,
			)
		}
		c.logger.WarnContext(ctx, "clerk user lookup rejected", "external_id", externalID, "status_code", status)
		return user.ExternalIdentity{}, fmt.Errorf("%w: clerk status=%d body=%s", usecase.ErrIdentityLookup, status, detail)
	}

	identity, err := decodeUser(resp.Body())
	if err != nil {
		return user.ExternalIdentity{}, fmt.Errorf("%w: decode clerk user %s: %w", usecase.ErrIdentityLookup, externalID, err)
	}
	identity.ExternalID = externalID
	return identity, nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}
