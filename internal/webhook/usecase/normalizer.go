package usecase

import (
	"strconv"
	"strings"

	apperrors "github.com/jameskabz/mpesa/internal/errors"
	"github.com/jameskabz/mpesa/internal/record/domain"
)

// ErrMalformedSTKCallback marks an STK delivery whose payload lacks the
// nested callback object or its result code. The delivery is still
// acknowledged; it is just not worth persisting.
var ErrMalformedSTKCallback = apperrors.New("stk callback missing Body.stkCallback.ResultCode")

// Normalizer flattens the gateway's callback payload shapes into audit
// records. Extraction is tolerant: absent fields become nil, never an error,
// except the STK shape's missing result code which marks the whole delivery
// malformed.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeResult flattens a result-style payload: B2C, transaction status,
// account balance, and reversal results and timeouts all nest their fields
// under a top-level Result object.
func (n *Normalizer) NormalizeResult(callbackType domain.CallbackType, payload map[string]any) *domain.InboundCallback {
	cb := &domain.InboundCallback{
		Type:                     callbackType,
		ResultCode:               intField(payload, "Result.ResultCode"),
		ResultDesc:               stringField(payload, "Result.ResultDesc"),
		OriginatorConversationID: stringField(payload, "Result.OriginatorConversationID"),
		ConversationID:           stringField(payload, "Result.ConversationID"),
		TransactionID:            stringField(payload, "Result.TransactionID"),
		Payload:                  payload,
	}

	// The B2C timeout shape mirrors the correlation IDs into the party
	// columns as well.
	if callbackType == domain.CallbackTypeB2CTimeout {
		cb.PartyA = cb.OriginatorConversationID
		cb.PartyB = cb.ConversationID
	}

	return cb
}

// NormalizeC2B flattens a C2B validation or confirmation payload, which
// carries its fields at the top level. The transaction ID doubles as the
// receipt number and the payer MSISDN doubles as party A.
func (n *Normalizer) NormalizeC2B(callbackType domain.CallbackType, payload map[string]any) *domain.InboundCallback {
	msisdn := stringField(payload, "MSISDN")
	transID := stringField(payload, "TransID")

	return &domain.InboundCallback{
		Type:               callbackType,
		ResultCode:         intField(payload, "ResultCode"),
		ResultDesc:         stringField(payload, "ResultDesc"),
		TransactionID:      transID,
		MpesaReceiptNumber: transID,
		BillRefNumber:      stringField(payload, "BillRefNumber"),
		Amount:             floatField(payload, "TransAmount"),
		Phone:              msisdn,
		PartyA:             msisdn,
		PartyB:             stringField(payload, "BusinessShortCode"),
		Payload:            payload,
	}
}

// NormalizeSTK flattens an STK push callback. The callback object nests under
// Body.stkCallback; when that object or its ResultCode is absent the payload
// is malformed and ErrMalformedSTKCallback is returned. The merchant and
// checkout request IDs double as the originator and conversation IDs, and the
// receipt, amount, and phone come from a variable-length metadata item array.
func (n *Normalizer) NormalizeSTK(payload map[string]any) (*domain.InboundCallback, error) {
	stkCallback, ok := dig(payload, "Body.stkCallback").(map[string]any)
	if !ok || dig(stkCallback, "ResultCode") == nil {
		return nil, ErrMalformedSTKCallback
	}

	merchantRequestID := stringField(stkCallback, "MerchantRequestID")
	checkoutRequestID := stringField(stkCallback, "CheckoutRequestID")
	receipt := stkMetadataValue(stkCallback, "MpesaReceiptNumber")

	return &domain.InboundCallback{
		Type:                     domain.CallbackTypeSTK,
		ResultCode:               intField(stkCallback, "ResultCode"),
		ResultDesc:               stringField(stkCallback, "ResultDesc"),
		OriginatorConversationID: merchantRequestID,
		ConversationID:           checkoutRequestID,
		TransactionID:            toStringPtr(receipt),
		MerchantRequestID:        merchantRequestID,
		CheckoutRequestID:        checkoutRequestID,
		MpesaReceiptNumber:       toStringPtr(receipt),
		Amount:                   toFloatPtr(stkMetadataValue(stkCallback, "Amount")),
		Phone:                    toStringPtr(stkMetadataValue(stkCallback, "PhoneNumber")),
		Payload:                  payload,
	}, nil
}

// stkMetadataValue scans the CallbackMetadata.Item array for the named
// {Name, Value} entry. Missing array or entry yields nil.
func stkMetadataValue(stkCallback map[string]any, name string) any {
	items, ok := dig(stkCallback, "CallbackMetadata.Item").([]any)
	if !ok {
		return nil
	}

	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if item["Name"] == name {
			return item["Value"]
		}
	}

	return nil
}

// dig walks a dot-addressed path into nested maps, returning nil when any
// intermediate key is absent or not a map.
func dig(payload map[string]any, path string) any {
	var current any = payload
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

func stringField(payload map[string]any, path string) *string {
	return toStringPtr(dig(payload, path))
}

func intField(payload map[string]any, path string) *int {
	return toIntPtr(dig(payload, path))
}

func floatField(payload map[string]any, path string) *float64 {
	return toFloatPtr(dig(payload, path))
}

// toStringPtr renders a scalar as a string. JSON numbers are formatted
// without a trailing fractional part so numeric MSISDNs survive intact.
func toStringPtr(v any) *string {
	switch value := v.(type) {
	case string:
		return domain.Ptr(value)
	case float64:
		return domain.Ptr(strconv.FormatFloat(value, 'f', -1, 64))
	case bool:
		return domain.Ptr(strconv.FormatBool(value))
	}
	return nil
}

func toIntPtr(v any) *int {
	switch value := v.(type) {
	case float64:
		return domain.Ptr(int(value))
	case int:
		return domain.Ptr(value)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return domain.Ptr(parsed)
		}
	}
	return nil
}

func toFloatPtr(v any) *float64 {
	switch value := v.(type) {
	case float64:
		return domain.Ptr(value)
	case int:
		return domain.Ptr(float64(value))
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return domain.Ptr(parsed)
		}
	}
	return nil
}
