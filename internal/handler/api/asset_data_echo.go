package api

import (
	"context"
	"errors"
	"strings"

	"Diversonal/internal/domain/models"
	"Diversonal/internal/service/ratelimit"
	"Diversonal/internal/usecase"
	xhttp "Diversonal/pkg/http"
	"Diversonal/pkg/http/middleware"
	applogger "Diversonal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgMissingFields = "Missing ticker or assetClass"
	msgInvalidBody   = "Invalid request body"
)

// AssetDataUseCase builds the asset-data response for one request.
type AssetDataUseCase interface {
	Get(ctx context.Context, req models.AssetDataRequest) (*models.AssetDataResponse, error)
}

// AssetDataHandler serves the asset-data API on Echo.
type AssetDataHandler struct {
	uc AssetDataUseCase
	rl *ratelimit.Limiter
	l  *applogger.Logger
}

// NewAssetDataHandler creates the handler. rl may be nil to disable per-client throttling.
func NewAssetDataHandler(l *applogger.Logger, uc AssetDataUseCase, rl *ratelimit.Limiter) *AssetDataHandler {
	if l == nil {
		l = applogger.Nop()
	}
	return &AssetDataHandler{uc: uc, rl: rl, l: l}
}

func (h *AssetDataHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)

	var mw []echo.MiddlewareFunc
	if h.rl != nil && h.rl.Enabled() {
		mw = append(mw, middleware.RateLimit(h.rl, xhttp.TooManyRequestsResponse))
	}
	g.POST("/asset-data", h.Post, mw...)
}

// Post handles POST /api/asset-data.
func (h *AssetDataHandler) Post(c echo.Context) error {
	// Clients post JSON without a Content-Type; the body is decoded as JSON regardless.
	if ct := c.Request().Header.Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	req := &models.AssetDataRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		if verrs[0].Code == xhttp.CodeBind {
			return xhttp.BadRequestResponse(c, msgInvalidBody)
		}
		return xhttp.BadRequestResponse(c, msgMissingFields)
	}

	resp, err := h.uc.Get(c.Request().Context(), *req)
	if err != nil {
		var ue *usecase.UnsupportedAssetClassError
		if errors.As(err, &ue) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(ue.Error()).WithError(err))
		}
		h.l.Error("asset-data usecase error",
			applogger.String("ticker", req.Ticker),
			applogger.String("asset_class", req.AssetClass),
			applogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, resp)
}

// Health handles GET /api/health.
func (h *AssetDataHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, xhttp.HealthResponse{Status: "ok"})
}
