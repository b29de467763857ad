// Package http provides the inbound callback endpoints. Every callback that
// passes validation is acknowledged with a fixed response regardless of
// processing outcome; the gateway retries delivery on anything else.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	webhookUseCase "github.com/jameskabz/mpesa/internal/webhook/usecase"
)

// rejectionResponse is the body returned for deliveries failing validation.
type rejectionResponse struct {
	OK     bool    `json:"ok"`
	Status int     `json:"status"`
	Data   any     `json:"data"`
	Error  *string `json:"error"`
}

// ValidationMiddleware rejects callback deliveries that fail the configured
// token or IP checks with HTTP 403. Validation is disabled by default.
func ValidationMiddleware(validator *webhookUseCase.Validator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rejection := validator.Validate(c.GetHeader(validator.TokenHeader()), c.ClientIP())
		if rejection == nil {
			c.Next()
			return
		}

		logger.Warn("webhook delivery rejected",
			slog.String("reason", rejection.Reason),
			slog.String("client_ip", c.ClientIP()),
			slog.String("path", c.Request.URL.Path),
		)

		c.AbortWithStatusJSON(http.StatusForbidden, rejectionResponse{
			OK:     false,
			Status: rejection.Status,
			Data:   nil,
			Error:  &rejection.Reason,
		})
	}
}
