package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jameskabz/mpesa/internal/gateway/http/dto"
	gatewayUseCase "github.com/jameskabz/mpesa/internal/gateway/usecase"
	"github.com/jameskabz/mpesa/internal/httputil"
	customValidation "github.com/jameskabz/mpesa/internal/validation"
)

// UtilityHandler handles the transaction status, account balance, and
// reversal endpoints.
type UtilityHandler struct {
	gateway gatewayUseCase.GatewayUseCase
	logger  *slog.Logger
}

// NewUtilityHandler creates a new UtilityHandler.
func NewUtilityHandler(gateway gatewayUseCase.GatewayUseCase, logger *slog.Logger) *UtilityHandler {
	return &UtilityHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// TransactionStatusHandler queries the status of a transaction.
// POST /transaction/status
func (h *UtilityHandler) TransactionStatusHandler(c *gin.Context) {
	var req dto.TransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.TransactionStatus(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}

// AccountBalanceHandler queries the balance of a short code.
// POST /account/balance
func (h *UtilityHandler) AccountBalanceHandler(c *gin.Context) {
	var req dto.AccountBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.AccountBalance(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}

// ReversalHandler reverses a completed transaction.
// POST /reversal
func (h *UtilityHandler) ReversalHandler(c *gin.Context) {
	var req dto.ReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.Reversal(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}
