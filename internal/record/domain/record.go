// Package domain defines the persisted gateway audit entities: one record per
// outbound gateway call attempted and one per inbound webhook delivery
// accepted. Both are written once and never mutated; correlation identifiers
// are the only linkage between the two, and matching them is left to consumers.
package domain

import "time"

// RequestType identifies the outbound gateway operation that was attempted.
type RequestType string

// Outbound request types.
const (
	RequestTypeSTK               RequestType = "stk"
	RequestTypeB2C               RequestType = "b2c"
	RequestTypeB2CValidated      RequestType = "b2c_validated"
	RequestTypeC2BRegister       RequestType = "c2b_register"
	RequestTypeC2BSimulate       RequestType = "c2b_simulate"
	RequestTypeTransactionStatus RequestType = "transaction_status"
	RequestTypeAccountBalance    RequestType = "account_balance"
	RequestTypeReversal          RequestType = "reversal"
)

// RequestStatus reflects the immediate HTTP outcome of the outbound call.
// Gateway operations are asynchronous, so "pending" only means the request
// was accepted; the final outcome arrives later as a callback.
type RequestStatus string

// Outbound request statuses.
const (
	RequestStatusPending RequestStatus = "pending"
	RequestStatusFailed  RequestStatus = "failed"
)

// CallbackType identifies the webhook delivery shape.
type CallbackType string

// Inbound callback types.
const (
	CallbackTypeSTK                      CallbackType = "stk"
	CallbackTypeB2CResult                CallbackType = "b2c_result"
	CallbackTypeB2CTimeout               CallbackType = "b2c_timeout"
	CallbackTypeC2BValidation            CallbackType = "c2b_validation"
	CallbackTypeC2BConfirmation          CallbackType = "c2b_confirmation"
	CallbackTypeTransactionStatusResult  CallbackType = "transaction_status_result"
	CallbackTypeTransactionStatusTimeout CallbackType = "transaction_status_timeout"
	CallbackTypeAccountBalanceResult     CallbackType = "account_balance_result"
	CallbackTypeAccountBalanceTimeout    CallbackType = "account_balance_timeout"
	CallbackTypeReversalResult           CallbackType = "reversal_result"
	CallbackTypeReversalTimeout          CallbackType = "reversal_timeout"
)

// OutboundRequest is the audit record of one gateway call. Nullable columns
// use pointer fields; nil means the value was absent.
type OutboundRequest struct {
	ID                       int64
	Type                     RequestType
	Status                   RequestStatus
	Phone                    *string
	PartyA                   *string
	PartyB                   *string
	Amount                   *float64
	Currency                 string
	Remarks                  *string
	CommandID                *string
	BillRefNumber            *string
	OriginatorConversationID *string
	ConversationID           *string
	MerchantRequestID        *string
	CheckoutRequestID        *string
	ResponseCode             *string
	ResponseDescription      *string
	TransactionID            *string
	RequestPayload           map[string]any
	ResponsePayload          map[string]any
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// InboundCallback is the audit record of one webhook delivery that passed
// validation and carried a recognizable result structure.
type InboundCallback struct {
	ID                       int64
	Type                     CallbackType
	ResultCode               *int
	ResultDesc               *string
	OriginatorConversationID *string
	ConversationID           *string
	TransactionID            *string
	MerchantRequestID        *string
	CheckoutRequestID        *string
	MpesaReceiptNumber       *string
	BillRefNumber            *string
	Amount                   *float64
	Phone                    *string
	PartyA                   *string
	PartyB                   *string
	Payload                  map[string]any
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Ptr returns a pointer to v, for filling nullable record fields.
func Ptr[T any](v T) *T {
	return &v
}
