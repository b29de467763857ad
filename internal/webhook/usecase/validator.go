// Package usecase implements webhook validation and callback normalization.
package usecase

import (
	"crypto/subtle"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/webhook/domain"
)

// DefaultTokenHeader is the request header carrying the shared webhook token
// when no header name is configured.
const DefaultTokenHeader = "X-Mpesa-Token"

// Validator checks callback deliveries against the configured shared token
// and IP allow-list. Disabled by default: many deployments rely on
// network-level trust instead.
type Validator struct {
	config *config.Provider
}

// NewValidator creates a new Validator.
func NewValidator(cfg *config.Provider) *Validator {
	return &Validator{
		config: cfg,
	}
}

// TokenHeader returns the configured name of the token header.
func (v *Validator) TokenHeader() string {
	return v.config.GetString("webhook_validation.header", DefaultTokenHeader)
}

// Validate checks the delivery's token header value and client IP. It returns
// nil when the delivery passes, or the first failing check's rejection. The
// token check runs before the IP check.
func (v *Validator) Validate(headerToken, clientIP string) *domain.Rejection {
	if !v.config.GetBool("webhook_validation.enabled", false) {
		return nil
	}

	if token := v.config.GetString("webhook_validation.token", ""); token != "" {
		if subtle.ConstantTimeCompare([]byte(headerToken), []byte(token)) != 1 {
			return domain.NewRejection(domain.ReasonInvalidToken)
		}
	}

	if allowed := v.config.GetStrings("webhook_validation.allowed_ips"); len(allowed) > 0 {
		found := false
		for _, ip := range allowed {
			if ip == clientIP {
				found = true
				break
			}
		}
		if !found {
			return domain.NewRejection(domain.ReasonIPNotAllowed)
		}
	}

	return nil
}
