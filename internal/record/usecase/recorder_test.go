package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jameskabz/mpesa/internal/record/domain"
)

type fakeRepository struct {
	outboundCalls int
	inboundCalls  int
	err           error
}

func (f *fakeRepository) CreateOutbound(_ context.Context, _ *domain.OutboundRequest) error {
	f.outboundCalls++
	return f.err
}

func (f *fakeRepository) CreateInbound(_ context.Context, _ *domain.InboundCallback) error {
	f.inboundCalls++
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecordUseCase_RecordOutbound(t *testing.T) {
	repo := &fakeRepository{}
	uc := NewRecordUseCase(Config{StoreRequests: true, StoreCallbacks: true}, repo, testLogger())

	uc.RecordOutbound(context.Background(), &domain.OutboundRequest{Type: domain.RequestTypeSTK})
	assert.Equal(t, 1, repo.outboundCalls)
}

func TestRecordUseCase_RecordOutbound_Disabled(t *testing.T) {
	repo := &fakeRepository{}
	uc := NewRecordUseCase(Config{StoreRequests: false, StoreCallbacks: true}, repo, testLogger())

	uc.RecordOutbound(context.Background(), &domain.OutboundRequest{Type: domain.RequestTypeSTK})
	assert.Zero(t, repo.outboundCalls)
}

func TestRecordUseCase_RecordInbound_SwallowsRepositoryError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("disk full")}
	uc := NewRecordUseCase(Config{StoreRequests: true, StoreCallbacks: true}, repo, testLogger())

	// Must not panic or propagate the repository error.
	uc.RecordInbound(context.Background(), &domain.InboundCallback{Type: domain.CallbackTypeSTK})
	assert.Equal(t, 1, repo.inboundCalls)
}

func TestRecordUseCase_RecordInbound_Disabled(t *testing.T) {
	repo := &fakeRepository{}
	uc := NewRecordUseCase(Config{StoreRequests: true, StoreCallbacks: false}, repo, testLogger())

	uc.RecordInbound(context.Background(), &domain.InboundCallback{Type: domain.CallbackTypeSTK})
	assert.Zero(t, repo.inboundCalls)
}
