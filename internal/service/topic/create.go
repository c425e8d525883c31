package topic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/internal/schedule"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// Create makes a new topic with its full review schedule. The topic and
// its checkpoints are written in one transaction so a topic is never
// observable without all four checkpoints.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Topic, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	// Check topic limit.
	count, err := s.topics.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count topics: %w", err)
	}
	if count >= s.cfg.MaxTopicsPerUser {
		return nil, domain.NewValidationError("topics", "limit reached")
	}

	// A foreign or absent parent is reported as not found; ownership is
	// never leaked through a distinct error here.
	if input.ParentID != nil {
		if _, err := s.topics.GetByID(ctx, userID, *input.ParentID); err != nil {
			return nil, fmt.Errorf("check parent: %w", domain.ErrNotFound)
		}
	}

	notes := ""
	if input.Notes != nil {
		notes = *input.Notes
	}

	var created *domain.Topic
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		t := &domain.Topic{
			ParentID:    input.ParentID,
			UserID:      userID,
			Name:        input.Name,
			Notes:       notes,
			CreatedAt:   now,
			Checkpoints: schedule.NewCheckpoints(now),
		}

		var createErr error
		created, createErr = s.topics.Create(txCtx, userID, t)
		if createErr != nil {
			return fmt.Errorf("create topic: %w", createErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", created.ID.String()),
		slog.String("user_id", userID.String()))

	return created, nil
}
