package api

import (
	"net/http"

	models "Horary/internal/domain/models"
	"Horary/internal/service/ratelimit"
	"Horary/internal/usecase"
	xhttp "Horary/pkg/http"
	xlogger "Horary/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JudgmentEchoHandler exposes the horary judgment API over Echo.
type JudgmentEchoHandler struct {
	logger  *xlogger.Logger
	judge   *usecase.JudgmentService
	limiter *ratelimit.Limiter
}

func NewJudgmentEchoHandler(logger *xlogger.Logger, judge *usecase.JudgmentService) *JudgmentEchoHandler {
	return &JudgmentEchoHandler{
		logger:  logger,
		judge:   judge,
		limiter: ratelimit.New(),
	}
}

func (h *JudgmentEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/judgment", h.Judgment)
	g.GET("/health", h.Health)
}

// Judgment answers one horary question. Infrastructure failures surface as
// dedicated verdicts inside a 200 response; only malformed requests and
// throttling are HTTP errors.
func (h *JudgmentEchoHandler) Judgment(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), 10, 2) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "rate limit exceeded",
		})
	}

	req := &models.JudgmentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp := h.judge.Judge(c.Request().Context(), req)
	if resp.Judgment == models.VerdictError || resp.Judgment == models.VerdictLocationError {
		h.logger.Warn("degraded judgment",
			xlogger.String("verdict", string(resp.Judgment)),
			xlogger.String("error", resp.Error))
	}
	return xhttp.SuccessResponse(c, resp)
}

// Health reports service liveness.
func (h *JudgmentEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
