package topic

import (
	"context"
	"fmt"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// Rename changes a topic's name.
func (s *Service) Rename(ctx context.Context, input RenameInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	// Resolve the topic first so a foreign owner surfaces as forbidden
	// rather than not found.
	if _, err := s.topics.GetByID(ctx, userID, input.TopicID); err != nil {
		return nil, err
	}

	updated, err := s.topics.Update(ctx, userID, input.TopicID, domain.TopicUpdateParams{Name: &input.Name})
	if err != nil {
		return nil, fmt.Errorf("rename topic: %w", err)
	}

	return updated, nil
}
