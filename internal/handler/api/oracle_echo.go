package api

import (
	"crypto/subtle"

	models "MoonPulse/internal/domain/models"
	"MoonPulse/internal/service/ratelimit"
	"MoonPulse/internal/usecase"
	xhttp "MoonPulse/pkg/http"
	xlogger "MoonPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OracleEchoHandler implements Echo-based HTTP handlers for the oracle API.
type OracleEchoHandler struct {
	logger    *xlogger.Logger
	builder   *usecase.ReportBuilder
	publisher *usecase.ReportPublisher
	limiter   *ratelimit.Limiter
	cronToken string
	staticDir string
}

func NewOracleEchoHandler(
	logger *xlogger.Logger,
	builder *usecase.ReportBuilder,
	publisher *usecase.ReportPublisher,
	cronToken string,
	staticDir string,
) *OracleEchoHandler {
	return &OracleEchoHandler{
		logger:    logger,
		builder:   builder,
		publisher: publisher,
		limiter:   ratelimit.New(),
		cronToken: cronToken,
		staticDir: staticDir,
	}
}

func (h *OracleEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/oracle/report", h.Report)
	g.GET("/oracle/preview", h.Preview)
	g.GET("/lunar", h.Lunar)
	g.GET("/geomagnetic", h.Geomagnetic)
	g.GET("/reports/recent", h.Recent)

	e.GET("/healthz", h.Health)
	if h.staticDir != "" {
		e.Static("/", h.staticDir)
	}
}

// Report builds and publishes a report. This is the cron trigger, so it is
// token-authorized and rate limited per caller IP.
func (h *OracleEchoHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.cronToken)) != 1 {
		return xhttp.UnauthorizedResponse(c, "token is invalid")
	}
	if !h.limiter.Allow(c.RealIP(), 5, 0.2) {
		return xhttp.ForbiddenResponse(c, "rate limit exceeded")
	}

	report, err := h.builder.Build(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("report build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if req.DryRun {
		return xhttp.SuccessResponse(c, report)
	}

	rec, err := h.publisher.Publish(c.Request().Context(), report, req.MaxPost)
	if err != nil {
		h.logger.Error("report publish error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, rec)
}

// Preview builds a report without publishing it.
func (h *OracleEchoHandler) Preview(c echo.Context) error {
	req := &models.PreviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.builder.Build(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("preview build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

// Lunar returns today's normalized lunar signal.
func (h *OracleEchoHandler) Lunar(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, h.builder.Lunar(c.Request().Context()))
}

// Geomagnetic returns both normalized Kp readings.
func (h *OracleEchoHandler) Geomagnetic(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, h.builder.Geomagnetic(c.Request().Context()))
}

// Recent returns the last n published report records.
func (h *OracleEchoHandler) Recent(c echo.Context) error {
	req := &models.RecentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	recs, err := h.publisher.Recent(c.Request().Context(), req.N)
	if err != nil {
		h.logger.Error("recent reports error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, recs, int64(len(recs)))
}

// Health reports liveness.
func (h *OracleEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
