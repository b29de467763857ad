package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	recordDomain "github.com/jameskabz/mpesa/internal/record/domain"
	recordUseCase "github.com/jameskabz/mpesa/internal/record/usecase"
	webhookUseCase "github.com/jameskabz/mpesa/internal/webhook/usecase"
)

// acknowledgment is the fixed response every accepted delivery receives. Any
// other body makes the gateway consider the delivery failed and retry it.
var acknowledgment = gin.H{
	"ResultCode": 0,
	"ResultDesc": "Accepted",
}

// CallbackHandler handles the eleven inbound callback endpoints.
type CallbackHandler struct {
	normalizer *webhookUseCase.Normalizer
	recorder   recordUseCase.Recorder
	logger     *slog.Logger
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(
	normalizer *webhookUseCase.Normalizer,
	recorder recordUseCase.Recorder,
	logger *slog.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		normalizer: normalizer,
		recorder:   recorder,
		logger:     logger,
	}
}

// payload decodes the delivery body. An unreadable or non-object body yields
// an empty payload rather than an error: the delivery is still acknowledged.
func (h *CallbackHandler) payload(c *gin.Context) map[string]any {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

// STKHandler handles the STK push callback.
// POST /stk/callback
func (h *CallbackHandler) STKHandler(c *gin.Context) {
	payload := h.payload(c)
	h.logger.Info("stk callback received", slog.Any("payload", payload))

	cb, err := h.normalizer.NormalizeSTK(payload)
	if err != nil {
		// Malformed delivery: acknowledged, never persisted.
		h.logger.Warn("stk callback missing required fields", slog.Any("payload", payload))
		c.JSON(http.StatusOK, acknowledgment)
		return
	}

	h.recorder.RecordInbound(c.Request.Context(), cb)
	c.JSON(http.StatusOK, acknowledgment)
}

// resultHandler acknowledges and records one result-style delivery.
func (h *CallbackHandler) resultHandler(c *gin.Context, callbackType recordDomain.CallbackType) {
	payload := h.payload(c)
	h.logger.Info("callback received",
		slog.String("type", string(callbackType)),
		slog.Any("payload", payload),
	)

	h.recorder.RecordInbound(c.Request.Context(), h.normalizer.NormalizeResult(callbackType, payload))
	c.JSON(http.StatusOK, acknowledgment)
}

// c2bHandler acknowledges and records one C2B-style delivery.
func (h *CallbackHandler) c2bHandler(c *gin.Context, callbackType recordDomain.CallbackType) {
	payload := h.payload(c)
	h.logger.Info("callback received",
		slog.String("type", string(callbackType)),
		slog.Any("payload", payload),
	)

	h.recorder.RecordInbound(c.Request.Context(), h.normalizer.NormalizeC2B(callbackType, payload))
	c.JSON(http.StatusOK, acknowledgment)
}

// B2CResultHandler handles the B2C result callback.
// POST /b2c/result
func (h *CallbackHandler) B2CResultHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeB2CResult)
}

// B2CTimeoutHandler handles the B2C queue timeout callback.
// POST /b2c/timeout
func (h *CallbackHandler) B2CTimeoutHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeB2CTimeout)
}

// C2BValidationHandler handles the C2B validation callback.
// POST /c2b/validation
func (h *CallbackHandler) C2BValidationHandler(c *gin.Context) {
	h.c2bHandler(c, recordDomain.CallbackTypeC2BValidation)
}

// C2BConfirmationHandler handles the C2B confirmation callback.
// POST /c2b/confirmation
func (h *CallbackHandler) C2BConfirmationHandler(c *gin.Context) {
	h.c2bHandler(c, recordDomain.CallbackTypeC2BConfirmation)
}

// TransactionStatusResultHandler handles the transaction status result callback.
// POST /transaction/status/result
func (h *CallbackHandler) TransactionStatusResultHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeTransactionStatusResult)
}

// TransactionStatusTimeoutHandler handles the transaction status timeout callback.
// POST /transaction/status/timeout
func (h *CallbackHandler) TransactionStatusTimeoutHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeTransactionStatusTimeout)
}

// AccountBalanceResultHandler handles the account balance result callback.
// POST /account/balance/result
func (h *CallbackHandler) AccountBalanceResultHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeAccountBalanceResult)
}

// AccountBalanceTimeoutHandler handles the account balance timeout callback.
// POST /account/balance/timeout
func (h *CallbackHandler) AccountBalanceTimeoutHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeAccountBalanceTimeout)
}

// ReversalResultHandler handles the reversal result callback.
// POST /reversal/result
func (h *CallbackHandler) ReversalResultHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeReversalResult)
}

// ReversalTimeoutHandler handles the reversal timeout callback.
// POST /reversal/timeout
func (h *CallbackHandler) ReversalTimeoutHandler(c *gin.Context) {
	h.resultHandler(c, recordDomain.CallbackTypeReversalTimeout)
}
