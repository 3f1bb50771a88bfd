package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/platform/viewcache"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	profileService     *usecase.ProfileService
	dashboardService   *usecase.DashboardService
	resumeService      *usecase.ResumeService
	coverLetterService *usecase.CoverLetterService
	views              *viewcache.Cache
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	profileService *usecase.ProfileService,
	dashboardService *usecase.DashboardService,
	resumeService *usecase.ResumeService,
	coverLetterService *usecase.CoverLetterService,
	views *viewcache.Cache,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileService:     profileService,
		dashboardService:   dashboardService,
		resumeService:      resumeService,
		coverLetterService: coverLetterService,
		views:              views,
		logger:             logger,
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a strict JSON body and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// sessionOrReject writes 401 when the route ran without a verified session.
func (h *Handler) sessionOrReject(ctx context.Context, w http.ResponseWriter) (user.Session, bool) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session is missing from request context", usecase.ErrUnauthorized))
	}
	return session, ok
}
