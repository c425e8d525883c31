package topic

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/config"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type topicRepo interface {
	GetByID(ctx context.Context, userID, topicID uuid.UUID) (*domain.Topic, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.TopicFilter) ([]*domain.Topic, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, userID uuid.UUID, t *domain.Topic) (*domain.Topic, error)
	Update(ctx context.Context, userID, topicID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error)
	UpdateParent(ctx context.Context, userID, topicID uuid.UUID, parentID *uuid.UUID) (*domain.Topic, error)
	ToggleCheckpoint(ctx context.Context, topicID uuid.UUID, offsetDays int, now time.Time) error
	ReparentChildren(ctx context.Context, topicID uuid.UUID, newParentID *uuid.UUID) error
	Delete(ctx context.Context, userID, topicID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the topic business logic.
type Service struct {
	log    *slog.Logger
	topics topicRepo
	tx     txManager
	cfg    config.TopicsConfig
}

// NewService creates a new Topic service.
func NewService(logger *slog.Logger, topics topicRepo, tx txManager, cfg config.TopicsConfig) *Service {
	return &Service{
		log:    logger.With("service", "topic"),
		topics: topics,
		tx:     tx,
		cfg:    cfg,
	}
}
