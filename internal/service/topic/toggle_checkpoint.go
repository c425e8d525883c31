package topic

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/internal/schedule"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// ToggleCheckpoint flips one checkpoint between complete and incomplete
// and returns the refreshed topic. The flip runs in a transaction with a
// row lock, so two concurrent toggles of the same checkpoint serialize
// into a no-op pair instead of both completing it.
func (s *Service) ToggleCheckpoint(ctx context.Context, input ToggleCheckpointInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !schedule.ValidOffset(input.OffsetDays) {
		return nil, fmt.Errorf("offset %d: %w", input.OffsetDays, domain.ErrNotFound)
	}

	// Ownership check before touching checkpoint rows.
	if _, err := s.topics.GetByID(ctx, userID, input.TopicID); err != nil {
		return nil, err
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.topics.ToggleCheckpoint(txCtx, input.TopicID, input.OffsetDays, time.Now().UTC())
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.topics.GetByID(ctx, userID, input.TopicID)
}
