package topic

import (
	"context"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// List returns the user's topics in creation order, optionally filtered
// by a case-insensitive name search.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.topics.List(ctx, userID, domain.TopicFilter{Search: input.Search})
}

// Tree returns the user's topics assembled into their display forest.
func (s *Service) Tree(ctx context.Context, input ListInput) ([]*domain.TreeNode, error) {
	topics, err := s.List(ctx, input)
	if err != nil {
		return nil, err
	}
	return BuildForest(topics), nil
}
