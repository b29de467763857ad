package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jameskabz/mpesa/internal/gateway/http/dto"
	gatewayUseCase "github.com/jameskabz/mpesa/internal/gateway/usecase"
	"github.com/jameskabz/mpesa/internal/httputil"
	customValidation "github.com/jameskabz/mpesa/internal/validation"
)

// C2BHandler handles the C2B registration and simulation endpoints.
type C2BHandler struct {
	gateway gatewayUseCase.GatewayUseCase
	logger  *slog.Logger
}

// NewC2BHandler creates a new C2BHandler.
func NewC2BHandler(gateway gatewayUseCase.GatewayUseCase, logger *slog.Logger) *C2BHandler {
	return &C2BHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// RegisterHandler registers the C2B validation and confirmation URLs.
// POST /c2b/register
func (h *C2BHandler) RegisterHandler(c *gin.Context) {
	var req dto.C2BRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.C2BRegisterURLs(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}

// SimulateHandler simulates a C2B payment (sandbox only).
// POST /c2b/simulate
func (h *C2BHandler) SimulateHandler(c *gin.Context) {
	var req dto.C2BSimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.C2BSimulate(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}
