package usecase

import (
	"context"

	"github.com/jameskabz/mpesa/internal/gateway/domain"
)

// GatewayUseCase defines the outbound gateway operations consumed by HTTP
// handlers. Every method returns the result envelope; errors never escape.
type GatewayUseCase interface {
	GetAccessToken(ctx context.Context) domain.Result
	STKPush(ctx context.Context, input domain.STKPushInput) domain.Result
	STKQuery(ctx context.Context, input domain.STKQueryInput) domain.Result
	B2C(ctx context.Context, input domain.B2CInput) domain.Result
	ValidatedB2C(ctx context.Context, input domain.ValidatedB2CInput) domain.Result
	C2BRegisterURLs(ctx context.Context, input domain.C2BRegisterInput) domain.Result
	C2BSimulate(ctx context.Context, input domain.C2BSimulateInput) domain.Result
	TransactionStatus(ctx context.Context, input domain.TransactionStatusInput) domain.Result
	AccountBalance(ctx context.Context, input domain.AccountBalanceInput) domain.Result
	Reversal(ctx context.Context, input domain.ReversalInput) domain.Result
}

var _ GatewayUseCase = (*Client)(nil)
