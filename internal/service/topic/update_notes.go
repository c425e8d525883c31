package topic

import (
	"context"
	"fmt"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// UpdateNotes replaces a topic's free-form notes.
func (s *Service) UpdateNotes(ctx context.Context, input UpdateNotesInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	if _, err := s.topics.GetByID(ctx, userID, input.TopicID); err != nil {
		return nil, err
	}

	updated, err := s.topics.Update(ctx, userID, input.TopicID, domain.TopicUpdateParams{Notes: &input.Notes})
	if err != nil {
		return nil, fmt.Errorf("update notes: %w", err)
	}

	return updated, nil
}
