package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/pkg/ctxutil"
)

// CollectionFilter selects which topics a collection view returns.
type CollectionFilter string

const (
	FilterAll      CollectionFilter = "all"
	FilterDue      CollectionFilter = "due"
	FilterMastered CollectionFilter = "mastered"
)

// IsValid reports whether the filter is one of the known values.
func (f CollectionFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterDue, FilterMastered:
		return true
	}
	return false
}

// DashboardStats is the aggregate header for the dashboard view.
type DashboardStats struct {
	TotalTopics     int
	OverallProgress int
	MasteredCount   int
	DueTodayCount   int
}

// CollectionItem pairs a topic with its derived study state.
type CollectionItem struct {
	Topic    *domain.Topic
	Progress int
	Mastered bool
	DueToday bool
}

type topicRepo interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.TopicFilter) ([]*domain.Topic, error)
}

// Service computes dashboard statistics and filtered collections.
type Service struct {
	log    *slog.Logger
	topics topicRepo
	now    func() time.Time
}

// NewService creates a new Study service.
func NewService(logger *slog.Logger, topics topicRepo) *Service {
	return &Service{
		log:    logger.With("service", "study"),
		topics: topics,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard returns the aggregate stats over all of the user's topics.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	topics, err := s.topics.List(ctx, userID, domain.TopicFilter{})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalTopics:     len(topics),
		OverallProgress: OverallProgress(topics),
		MasteredCount:   MasteredCount(topics),
		DueTodayCount:   DueTodayCount(topics, s.now()),
	}, nil
}

// ListCollection returns the user's topics that match the filter, each
// annotated with its study state.
func (s *Service) ListCollection(ctx context.Context, filter CollectionFilter) ([]CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if !filter.IsValid() {
		return nil, domain.NewValidationError("filter", "must be one of: all, due, mastered")
	}

	topics, err := s.topics.List(ctx, userID, domain.TopicFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]CollectionItem, 0, len(topics))
	for _, t := range topics {
		item := CollectionItem{
			Topic:    t,
			Progress: TopicProgress(t),
			Mastered: IsMastered(t),
			DueToday: IsDueToday(t, now),
		}

		switch filter {
		case FilterDue:
			if !item.DueToday {
				continue
			}
		case FilterMastered:
			if !item.Mastered {
				continue
			}
		}

		items = append(items, item)
	}

	return items, nil
}
