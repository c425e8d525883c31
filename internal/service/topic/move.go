package topic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// Move re-parents a topic within the user's forest. A nil NewParentID
// makes the topic a root. Moving a topic under itself or under one of
// its own descendants is rejected, otherwise the forest would gain a
// cycle and the subtree would vanish from every tree read.
func (s *Service) Move(ctx context.Context, input MoveInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.topics.GetByID(ctx, userID, input.TopicID); err != nil {
		return nil, err
	}

	if input.NewParentID != nil {
		parent, err := s.topics.GetByID(ctx, userID, *input.NewParentID)
		if err != nil {
			return nil, fmt.Errorf("check parent: %w", domain.ErrNotFound)
		}

		if err := s.ensureNotDescendant(ctx, userID, input.TopicID, parent); err != nil {
			return nil, err
		}
	}

	updated, err := s.topics.UpdateParent(ctx, userID, input.TopicID, input.NewParentID)
	if err != nil {
		return nil, fmt.Errorf("move topic: %w", err)
	}

	return updated, nil
}

// ensureNotDescendant walks up the parent chain from candidate and fails
// if topicID appears on the way. The walk is bounded by the per-user
// topic limit so a corrupted chain cannot loop forever.
func (s *Service) ensureNotDescendant(ctx context.Context, userID, topicID uuid.UUID, candidate *domain.Topic) error {
	cur := candidate
	for i := 0; i <= s.cfg.MaxTopicsPerUser; i++ {
		if cur.ID == topicID {
			return domain.NewValidationError("new_parent_id", "cannot move a topic under its own descendant")
		}
		if cur.ParentID == nil {
			return nil
		}

		next, err := s.topics.GetByID(ctx, userID, *cur.ParentID)
		if err != nil {
			return fmt.Errorf("walk parent chain: %w", err)
		}
		cur = next
	}

	return fmt.Errorf("parent chain of %s exceeds topic limit", candidate.ID)
}
