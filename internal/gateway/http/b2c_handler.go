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

// B2CHandler handles the B2C payment endpoints.
type B2CHandler struct {
	gateway  gatewayUseCase.GatewayUseCase
	recorder recordUseCase.Recorder
	config   *config.Provider
	logger   *slog.Logger
}

// NewB2CHandler creates a new B2CHandler.
func NewB2CHandler(
	gateway gatewayUseCase.GatewayUseCase,
	recorder recordUseCase.Recorder,
	cfg *config.Provider,
	logger *slog.Logger,
) *B2CHandler {
	return &B2CHandler{
		gateway:  gateway,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
	}
}

// SendHandler sends a B2C payment and records the attempt.
// POST /b2c/send
func (h *B2CHandler) SendHandler(c *gin.Context) {
	var req dto.B2CRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.B2C(c.Request.Context(), req.ToInput())

	h.recorder.RecordOutbound(c.Request.Context(), &recordDomain.OutboundRequest{
		Type:                     recordDomain.RequestTypeB2C,
		Status:                   requestStatus(result),
		Phone:                    strPtr(req.Phone),
		Amount:                   recordDomain.Ptr(req.Amount),
		Remarks:                  strPtr(req.Remarks),
		CommandID:                strPtr(h.config.GetString("credentials.b2c.command_id", "")),
		PartyA:                   strPtr(h.config.GetString("credentials.b2c.short_code", "")),
		PartyB:                   strPtr(req.Phone),
		OriginatorConversationID: dataPtr(result, "OriginatorConversationID"),
		ConversationID:           dataPtr(result, "ConversationID"),
		ResponseCode:             dataPtr(result, "ResponseCode"),
		ResponseDescription:      dataPtr(result, "ResponseDescription"),
		TransactionID:            dataPtr(result, "TransactionID"),
		RequestPayload: map[string]any{
			"phone":                      req.Phone,
			"amount":                     req.Amount,
			"remarks":                    req.Remarks,
			"occasion":                   req.Occasion,
			"originator_conversation_id": req.OriginatorConversationID,
		},
		ResponsePayload: responsePayload(result),
	})

	c.JSON(result.HTTPStatus(), result)
}

// ValidatedHandler sends a B2C payment with national ID validation.
// POST /b2c/validated
func (h *B2CHandler) ValidatedHandler(c *gin.Context) {
	var req dto.ValidatedB2CRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.ValidatedB2C(c.Request.Context(), req.ToInput())
	c.JSON(result.HTTPStatus(), result)
}
