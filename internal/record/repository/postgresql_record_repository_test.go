package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameskabz/mpesa/internal/record/domain"
)

func TestPostgreSQLRecordRepository_CreateOutbound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLRecordRepository(db)

	req := &domain.OutboundRequest{
		Type:              domain.RequestTypeSTK,
		Status:            domain.RequestStatusPending,
		Phone:             domain.Ptr("254712345678"),
		PartyA:            domain.Ptr("254712345678"),
		PartyB:            domain.Ptr("174379"),
		Amount:            domain.Ptr(100.0),
		MerchantRequestID: domain.Ptr("29115-34620561-1"),
		CheckoutRequestID: domain.Ptr("ws_CO_191220191020363925"),
		RequestPayload:    map[string]any{"phone": "254712345678", "amount": 100},
		ResponsePayload:   map[string]any{"ResponseCode": "0"},
	}

	mock.ExpectExec(`INSERT INTO mpesa_requests`).
		WithArgs(
			req.Type, req.Status, req.Phone, req.PartyA, req.PartyB, req.Amount,
			"KES", nil, nil, nil, nil, nil,
			req.MerchantRequestID, req.CheckoutRequestID, nil, nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateOutbound(context.Background(), req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRecordRepository_CreateOutbound_Error(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLRecordRepository(db)

	mock.ExpectExec(`INSERT INTO mpesa_requests`).
		WillReturnError(errors.New("connection refused"))

	err = repo.CreateOutbound(context.Background(), &domain.OutboundRequest{
		Type:   domain.RequestTypeB2C,
		Status: domain.RequestStatusFailed,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create outbound request record")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRecordRepository_CreateInbound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLRecordRepository(db)

	cb := &domain.InboundCallback{
		Type:               domain.CallbackTypeC2BConfirmation,
		ResultCode:         domain.Ptr(0),
		TransactionID:      domain.Ptr("NLJ7RT61SV"),
		MpesaReceiptNumber: domain.Ptr("NLJ7RT61SV"),
		BillRefNumber:      domain.Ptr("invoice008"),
		Amount:             domain.Ptr(100.0),
		Phone:              domain.Ptr("254708374149"),
		PartyA:             domain.Ptr("254708374149"),
		PartyB:             domain.Ptr("600999"),
		Payload:            map[string]any{"TransID": "NLJ7RT61SV"},
	}

	mock.ExpectExec(`INSERT INTO mpesa_callbacks`).
		WithArgs(
			cb.Type, cb.ResultCode, nil, nil, nil,
			cb.TransactionID, nil, nil, cb.MpesaReceiptNumber,
			cb.BillRefNumber, cb.Amount, cb.Phone, cb.PartyA, cb.PartyB,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateInbound(context.Background(), cb)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRecordRepository_CreateInbound_NilPayload(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLRecordRepository(db)

	mock.ExpectExec(`INSERT INTO mpesa_callbacks`).
		WithArgs(
			domain.CallbackTypeB2CTimeout, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateInbound(context.Background(), &domain.InboundCallback{
		Type: domain.CallbackTypeB2CTimeout,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
