package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/resilience"
	"github.com/riskibarqy/career-coach/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

var (
	errGeminiTransient = crerr.New("gemini transient failure")
	errEmptyResponse   = errors.New("gemini returned an empty response")
)

type Config struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	RatePerMinute  int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// contentGenerator is the subset of genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates industry insights and cover letters with Gemini. It
// implements insight.Generator and coverletter.Writer.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *logging.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, crerr.New("gemini api key is required")
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, crerr.Wrap(err, "create gemini client")
	}
	return newClient(sdk.Models, cfg, logger), nil
}

func newClient(models contentGenerator, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), 1)
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("gemini circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		models:  models,
		model:   model,
		timeout: timeout,
		limiter: limiter,
		breaker: breaker,
		logger:  logger,
	}
}

// complete sends one prompt and returns the response text. Transient
// failures and an open breaker wrap usecase.ErrDependencyUnavailable.
func (c *Client) complete(ctx context.Context, operation, prompt string, config *genai.GenerateContentConfig) (string, error) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("gemini.model", c.model),
			attribute.String("gemini.operation", operation),
			attribute.Int("gemini.prompt_bytes", len(prompt)),
		)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: wait for gemini rate limit: %w", usecase.ErrDependencyUnavailable, err)
	}

	var text string
	err := c.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		start := time.Now()
		resp, err := c.models.GenerateContent(callCtx, c.model, genai.Text(prompt), config)
		if err != nil {
			return classify(err)
		}
		text = strings.TrimSpace(resp.Text())
		c.logger.DebugContext(ctx, "gemini call completed", "operation", operation, "model", c.model, "duration", time.Since(start), "response_bytes", len(text))
		if text == "" {
			return crerr.Mark(fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, errEmptyResponse), errGeminiTransient)
		}
		return nil
	}, isCircuitFailure)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "operation", operation, "state", string(c.breaker.State()))
			return "", fmt.Errorf("%w: gemini is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
		}
		c.logger.WarnContext(ctx, "gemini call failed", "operation", operation, "error", err)
		return "", err
	}
	return text, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && !isRetryableStatus(apiErr.Code) {
		return fmt.Errorf("gemini rejected request status=%d: %s", apiErr.Code, apiErr.Message)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("gemini call canceled: %w", err)
	}
	return crerr.Mark(fmt.Errorf("%w: gemini call: %w", usecase.ErrDependencyUnavailable, err), errGeminiTransient)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errGeminiTransient)
}

func isRetryableStatus(code int) bool {
	return code == 408 || code == 429 || code >= 500
}
