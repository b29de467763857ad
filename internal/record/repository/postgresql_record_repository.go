// Package repository provides data persistence implementations for gateway
// audit records. Both tables are insert-only: records are never read back,
// updated, or deleted by this system.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jameskabz/mpesa/internal/record/domain"

	apperrors "github.com/jameskabz/mpesa/internal/errors"
)

// PostgreSQLRecordRepository handles audit record persistence for PostgreSQL.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQLRecordRepository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{
		db: db,
	}
}

// CreateOutbound inserts a new outbound request record.
func (r *PostgreSQLRecordRepository) CreateOutbound(ctx context.Context, req *domain.OutboundRequest) error {
	requestPayload, responsePayload, err := marshalPayloads(req.RequestPayload, req.ResponsePayload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbound request payloads")
	}

	query := `INSERT INTO mpesa_requests
			  (type, status, phone, party_a, party_b, amount, currency, remarks,
			   command_id, bill_ref_number, originator_conversation_id, conversation_id,
			   merchant_request_id, checkout_request_id, response_code, response_description,
			   transaction_id, request_payload, response_payload, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())`

	_, err = r.db.ExecContext(ctx, query,
		req.Type, req.Status, req.Phone, req.PartyA, req.PartyB, req.Amount,
		currencyOrDefault(req.Currency), req.Remarks, req.CommandID, req.BillRefNumber,
		req.OriginatorConversationID, req.ConversationID, req.MerchantRequestID,
		req.CheckoutRequestID, req.ResponseCode, req.ResponseDescription,
		req.TransactionID, requestPayload, responsePayload,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbound request record")
	}
	return nil
}

// CreateInbound inserts a new inbound callback record.
func (r *PostgreSQLRecordRepository) CreateInbound(ctx context.Context, cb *domain.InboundCallback) error {
	payload, err := marshalPayload(cb.Payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode inbound callback payload")
	}

	query := `INSERT INTO mpesa_callbacks
			  (type, result_code, result_desc, originator_conversation_id, conversation_id,
			   transaction_id, merchant_request_id, checkout_request_id, mpesa_receipt_number,
			   bill_ref_number, amount, phone, party_a, party_b, payload, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())`

	_, err = r.db.ExecContext(ctx, query,
		cb.Type, cb.ResultCode, cb.ResultDesc, cb.OriginatorConversationID,
		cb.ConversationID, cb.TransactionID, cb.MerchantRequestID, cb.CheckoutRequestID,
		cb.MpesaReceiptNumber, cb.BillRefNumber, cb.Amount, cb.Phone, cb.PartyA,
		cb.PartyB, payload,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create inbound callback record")
	}
	return nil
}

// marshalPayload encodes an opaque payload mapping to JSON, mapping nil to a
// SQL NULL.
func marshalPayload(payload map[string]any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	return json.Marshal(payload)
}

// marshalPayloads encodes the request/response payload pair.
func marshalPayloads(request, response map[string]any) ([]byte, []byte, error) {
	requestPayload, err := marshalPayload(request)
	if err != nil {
		return nil, nil, err
	}
	responsePayload, err := marshalPayload(response)
	if err != nil {
		return nil, nil, err
	}
	return requestPayload, responsePayload, nil
}

// currencyOrDefault falls back to the gateway's currency when unset.
func currencyOrDefault(currency string) string {
	if currency == "" {
		return "KES"
	}
	return currency
}
