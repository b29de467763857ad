// Package usecase implements the audit recording boundary. Persistence
// failures here are logged and swallowed: an outbound operation's envelope
// and a callback's acknowledgment are already owed to their callers and must
// never change because a local storage write failed.
package usecase

import (
	"context"
	"log/slog"

	"github.com/jameskabz/mpesa/internal/record/domain"
)

// RecordRepository defines the insert-only persistence operations.
type RecordRepository interface {
	CreateOutbound(ctx context.Context, req *domain.OutboundRequest) error
	CreateInbound(ctx context.Context, cb *domain.InboundCallback) error
}

// Recorder defines the audit recording capability consumed by HTTP handlers.
type Recorder interface {
	// RecordOutbound persists an outbound gateway call attempt, if enabled.
	RecordOutbound(ctx context.Context, req *domain.OutboundRequest)
	// RecordInbound persists an accepted webhook delivery, if enabled.
	RecordInbound(ctx context.Context, cb *domain.InboundCallback)
}

// Config controls which record kinds are persisted.
type Config struct {
	StoreRequests  bool
	StoreCallbacks bool
}

// RecordUseCase is the default Recorder implementation.
type RecordUseCase struct {
	config Config
	repo   RecordRepository
	logger *slog.Logger
}

// NewRecordUseCase creates a new RecordUseCase.
func NewRecordUseCase(config Config, repo RecordRepository, logger *slog.Logger) *RecordUseCase {
	return &RecordUseCase{
		config: config,
		repo:   repo,
		logger: logger,
	}
}

// RecordOutbound persists the outbound request when storage is enabled.
// Repository errors are logged at Warn and swallowed.
func (uc *RecordUseCase) RecordOutbound(ctx context.Context, req *domain.OutboundRequest) {
	if !uc.config.StoreRequests {
		return
	}

	if err := uc.repo.CreateOutbound(ctx, req); err != nil {
		uc.logger.Warn("failed to persist outbound request",
			slog.String("type", string(req.Type)),
			slog.Any("error", err),
		)
	}
}

// RecordInbound persists the inbound callback when storage is enabled.
// Repository errors are logged at Warn and swallowed.
func (uc *RecordUseCase) RecordInbound(ctx context.Context, cb *domain.InboundCallback) {
	if !uc.config.StoreCallbacks {
		return
	}

	if err := uc.repo.CreateInbound(ctx, cb); err != nil {
		uc.logger.Warn("failed to persist inbound callback",
			slog.String("type", string(cb.Type)),
			slog.Any("error", err),
		)
	}
}
