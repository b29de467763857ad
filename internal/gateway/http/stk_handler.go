package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/gateway/http/dto"
	gatewayUseCase "github.com/jameskabz/mpesa/internal/gateway/usecase"
	"github.com/jameskabz/mpesa/internal/httputil"
	recordDomain "github.com/jameskabz/mpesa/internal/record/domain"
	recordUseCase "github.com/jameskabz/mpesa/internal/record/usecase"
	customValidation "github.com/jameskabz/mpesa/internal/validation"
)

// STKHandler handles the STK push and STK query endpoints.
type STKHandler struct {
	gateway  gatewayUseCase.GatewayUseCase
	recorder recordUseCase.Recorder
	config   *config.Provider
	logger   *slog.Logger
}

// NewSTKHandler creates a new STKHandler.
func NewSTKHandler(
	gateway gatewayUseCase.GatewayUseCase,
	recorder recordUseCase.Recorder,
	cfg *config.Provider,
	logger *slog.Logger,
) *STKHandler {
	return &STKHandler{
		gateway:  gateway,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
	}
}

// PushHandler initiates an STK push and records the attempt.
// POST /stk/push
func (h *STKHandler) PushHandler(c *gin.Context) {
	var req dto.STKPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.STKPush(c.Request.Context(), req.ToInput())

	partyB := req.PartyB
	if partyB == "" {
		partyB = h.config.GetString("credentials.stk.short_code", "")
	}

	h.recorder.RecordOutbound(c.Request.Context(), &recordDomain.OutboundRequest{
		Type:                recordDomain.RequestTypeSTK,
		Status:              requestStatus(result),
		Phone:               strPtr(req.Phone),
		Amount:              recordDomain.Ptr(req.Amount),
		PartyA:              strPtr(req.Phone),
		PartyB:              strPtr(partyB),
		CommandID:           strPtr(req.TransactionType),
		BillRefNumber:       strPtr(req.AccountReference),
		MerchantRequestID:   dataPtr(result, "MerchantRequestID"),
		CheckoutRequestID:   dataPtr(result, "CheckoutRequestID"),
		ResponseCode:        dataPtr(result, "ResponseCode"),
		ResponseDescription: dataPtr(result, "ResponseDescription"),
		RequestPayload: map[string]any{
			"phone":             req.Phone,
			"amount":            req.Amount,
			"account_reference": req.AccountReference,
			"transaction_desc":  req.TransactionDesc,
			"callback_url":      req.CallbackURL,
			"transaction_type":  req.TransactionType,
			"party_b":           req.PartyB,
		},
		ResponsePayload: responsePayload(result),
	})

	c.JSON(result.HTTPStatus(), result)
}

// QueryHandler queries the status of an STK push.
// POST /stk/query
func (h *STKHandler) QueryHandler(c *gin.Context) {
	var req dto.STKQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.STKQuery(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}
