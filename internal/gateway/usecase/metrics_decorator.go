package usecase

import (
	"context"
	"time"

	"github.com/jameskabz/mpesa/internal/gateway/domain"
	"github.com/jameskabz/mpesa/internal/metrics"
)

// gatewayUseCaseWithMetrics decorates GatewayUseCase with metrics instrumentation.
type gatewayUseCaseWithMetrics struct {
	next    GatewayUseCase
	metrics metrics.BusinessMetrics
}

// NewGatewayUseCaseWithMetrics wraps a GatewayUseCase with metrics recording.
func NewGatewayUseCaseWithMetrics(useCase GatewayUseCase, m metrics.BusinessMetrics) GatewayUseCase {
	return &gatewayUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// observe records the count and duration of one operation. An envelope with
// OK false counts as an error even though it is a normal HTTP response.
func (g *gatewayUseCaseWithMetrics) observe(
	ctx context.Context,
	operation string,
	start time.Time,
	result domain.Result,
) domain.Result {
	status := "success"
	if !result.OK {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "gateway", operation, status)
	g.metrics.RecordDuration(ctx, "gateway", operation, time.Since(start), status)

	return result
}

func (g *gatewayUseCaseWithMetrics) GetAccessToken(ctx context.Context) domain.Result {
	start := time.Now()
	return g.observe(ctx, "access_token", start, g.next.GetAccessToken(ctx))
}

func (g *gatewayUseCaseWithMetrics) STKPush(ctx context.Context, input domain.STKPushInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "stk_push", start, g.next.STKPush(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) STKQuery(ctx context.Context, input domain.STKQueryInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "stk_query", start, g.next.STKQuery(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) B2C(ctx context.Context, input domain.B2CInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "b2c_send", start, g.next.B2C(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) ValidatedB2C(ctx context.Context, input domain.ValidatedB2CInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "b2c_validated", start, g.next.ValidatedB2C(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) C2BRegisterURLs(ctx context.Context, input domain.C2BRegisterInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "c2b_register", start, g.next.C2BRegisterURLs(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) C2BSimulate(ctx context.Context, input domain.C2BSimulateInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "c2b_simulate", start, g.next.C2BSimulate(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) TransactionStatus(ctx context.Context, input domain.TransactionStatusInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "transaction_status", start, g.next.TransactionStatus(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) AccountBalance(ctx context.Context, input domain.AccountBalanceInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "account_balance", start, g.next.AccountBalance(ctx, input))
}

func (g *gatewayUseCaseWithMetrics) Reversal(ctx context.Context, input domain.ReversalInput) domain.Result {
	start := time.Now()
	return g.observe(ctx, "reversal", start, g.next.Reversal(ctx, input))
}
