package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// Delete removes a topic. Its direct children are moved up to the
// deleted topic's own parent (roots when a root is deleted), so no
// descendant is ever lost with it. Reparent and delete run in one
// transaction.
func (s *Service) Delete(ctx context.Context, topicID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	t, err := s.topics.GetByID(ctx, userID, topicID)
	if err != nil {
		return err
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.topics.ReparentChildren(txCtx, topicID, t.ParentID); err != nil {
			return fmt.Errorf("reparent children: %w", err)
		}
		if err := s.topics.Delete(txCtx, userID, topicID); err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("topic_id", topicID.String()),
		slog.String("user_id", userID.String()))

	return nil
}
