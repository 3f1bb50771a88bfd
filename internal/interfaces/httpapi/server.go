package httpapi

import (
	"net/http"

	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, verifier SessionVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "career-coach"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerOnboardingRoutes(mux, handler, verifier, logger)
	registerProfileRoutes(mux, handler, verifier)
	registerContentRoutes(mux, handler, verifier)

	return RequestTracing(cfg.ServiceName, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
