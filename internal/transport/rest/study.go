package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/revisemaster-backend/internal/service/study"
)

// studyService defines the minimal interface needed by StudyHandler.
type studyService interface {
	Dashboard(ctx context.Context) (*study.DashboardStats, error)
	ListCollection(ctx context.Context, filter study.CollectionFilter) ([]study.CollectionItem, error)
}

// StudyHandler serves dashboard and collection REST endpoints.
type StudyHandler struct {
	svc studyService
	log *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study")}
}

type dashboardResponse struct {
	TotalTopics     int `json:"totalTopics"`
	OverallProgress int `json:"overallProgress"`
	MasteredCount   int `json:"masteredCount"`
	DueTodayCount   int `json:"dueTodayCount"`
}

type collectionItemResponse struct {
	Topic    topicResponse `json:"topic"`
	Progress int           `json:"progress"`
	Mastered bool          `json:"mastered"`
	DueToday bool          `json:"dueToday"`
}

type collectionResponse struct {
	Filter string                   `json:"filter"`
	Items  []collectionItemResponse `json:"items"`
}

// Dashboard handles GET /api/dashboard.
func (h *StudyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalTopics:     stats.TotalTopics,
		OverallProgress: stats.OverallProgress,
		MasteredCount:   stats.MasteredCount,
		DueTodayCount:   stats.DueTodayCount,
	})
}

// Collection handles GET /api/collections/{filter}.
func (h *StudyHandler) Collection(w http.ResponseWriter, r *http.Request) {
	filter := study.CollectionFilter(r.PathValue("filter"))

	items, err := h.svc.ListCollection(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := collectionResponse{
		Filter: string(filter),
		Items:  make([]collectionItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, collectionItemResponse{
			Topic:    toTopicResponse(item.Topic),
			Progress: item.Progress,
			Mastered: item.Mastered,
			DueToday: item.DueToday,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
