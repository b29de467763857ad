// Package http provides HTTP handlers for the outbound gateway operations.
// Each handler binds and validates its request, invokes the gateway use case,
// optionally records the attempt, and returns the result envelope at the
// envelope's own HTTP status.
package http

import (
	gatewayDomain "github.com/jameskabz/mpesa/internal/gateway/domain"
	recordDomain "github.com/jameskabz/mpesa/internal/record/domain"
)

// strPtr returns a pointer for non-empty strings and nil otherwise, matching
// the audit record's nullable columns.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return recordDomain.Ptr(s)
}

// dataPtr extracts a string field from the envelope's data, nil when absent.
func dataPtr(result gatewayDomain.Result, key string) *string {
	return strPtr(result.DataString(key))
}

// requestStatus maps the envelope outcome to the audit record status.
func requestStatus(result gatewayDomain.Result) recordDomain.RequestStatus {
	if result.OK {
		return recordDomain.RequestStatusPending
	}
	return recordDomain.RequestStatusFailed
}

// responsePayload records the gateway's response data when present, falling
// back to the whole envelope for failures without a parseable body.
func responsePayload(result gatewayDomain.Result) map[string]any {
	if result.Data != nil {
		return result.Data
	}

	payload := map[string]any{
		"ok":     result.OK,
		"status": result.Status,
	}
	if result.Error != nil {
		payload["error"] = *result.Error
	}
	return payload
}
