package topic

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// Get returns a single topic with its checkpoints.
func (s *Service) Get(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.topics.GetByID(ctx, userID, topicID)
}
