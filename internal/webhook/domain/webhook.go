// Package domain defines the webhook validation outcome.
package domain

// Rejection reasons.
const (
	ReasonInvalidToken = "Invalid webhook token."
	ReasonIPNotAllowed = "Webhook IP not allowed."
)

// Rejection describes why a callback delivery was refused before processing.
// A nil *Rejection means the delivery passed validation.
type Rejection struct {
	Status int
	Reason string
}

// NewRejection creates a Rejection with the standard forbidden status.
func NewRejection(reason string) *Rejection {
	return &Rejection{
		Status: 403,
		Reason: reason,
	}
}
