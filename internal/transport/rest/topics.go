package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/internal/schedule"
	"github.com/heartmarshall/revisemaster-backend/internal/service/topic"
)

// topicService defines the minimal interface needed by TopicHandler.
type topicService interface {
	Create(ctx context.Context, input topic.CreateInput) (*domain.Topic, error)
	Get(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	List(ctx context.Context, input topic.ListInput) ([]*domain.Topic, error)
	Tree(ctx context.Context, input topic.ListInput) ([]*domain.TreeNode, error)
	Rename(ctx context.Context, input topic.RenameInput) (*domain.Topic, error)
	UpdateNotes(ctx context.Context, input topic.UpdateNotesInput) (*domain.Topic, error)
	Move(ctx context.Context, input topic.MoveInput) (*domain.Topic, error)
	ToggleCheckpoint(ctx context.Context, input topic.ToggleCheckpointInput) (*domain.Topic, error)
	Delete(ctx context.Context, topicID uuid.UUID) error
}

// TopicHandler serves topic REST endpoints.
type TopicHandler struct {
	svc topicService
	log *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(svc topicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{svc: svc, log: logger.With("handler", "topic")}
}

type createTopicRequest struct {
	Name     string  `json:"name"`
	Notes    *string `json:"notes,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

type renameTopicRequest struct {
	Name string `json:"name"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type moveTopicRequest struct {
	ParentID *string `json:"parentId"`
}

type topicResponse struct {
	ID          string               `json:"id"`
	ParentID    *string              `json:"parentId,omitempty"`
	Name        string               `json:"name"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Checkpoints []checkpointResponse `json:"checkpoints"`
}

type checkpointResponse struct {
	OffsetDays  int        `json:"offsetDays"`
	DueDate     time.Time  `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Status      string     `json:"status"`
}

type treeNodeResponse struct {
	topicResponse
	Children []treeNodeResponse `json:"children"`
}

type listTopicsResponse struct {
	Topics []topicResponse `json:"topics"`
}

type treeResponse struct {
	Roots []treeNodeResponse `json:"roots"`
}

// Create handles POST /api/topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parent id")
		return
	}

	created, err := h.svc.Create(r.Context(), topic.CreateInput{
		Name:     req.Name,
		Notes:    req.Notes,
		ParentID: parentID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTopicResponse(created))
}

// List handles GET /api/topics. An optional ?search= query filters by
// name substring.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	var input topic.ListInput
	if search := r.URL.Query().Get("search"); search != "" {
		input.Search = &search
	}

	topics, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listTopicsResponse{Topics: make([]topicResponse, 0, len(topics))}
	for _, t := range topics {
		resp.Topics = append(resp.Topics, toTopicResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Tree handles GET /api/topics/tree.
func (h *TopicHandler) Tree(w http.ResponseWriter, r *http.Request) {
	var input topic.ListInput
	if search := r.URL.Query().Get("search"); search != "" {
		input.Search = &search
	}

	roots, err := h.svc.Tree(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := treeResponse{Roots: make([]treeNodeResponse, 0, len(roots))}
	for _, n := range roots {
		resp.Roots = append(resp.Roots, toTreeNodeResponse(n))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/topics/{id}.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// Rename handles PUT /api/topics/{id}/name.
func (h *TopicHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	var req renameTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Rename(r.Context(), topic.RenameInput{TopicID: id, Name: req.Name})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// UpdateNotes handles PUT /api/topics/{id}/notes.
func (h *TopicHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	var req updateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.UpdateNotes(r.Context(), topic.UpdateNotesInput{TopicID: id, Notes: req.Notes})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// Move handles PUT /api/topics/{id}/parent. A null parentId moves the
// topic to the root level.
func (h *TopicHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	var req moveTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parent id")
		return
	}

	t, err := h.svc.Move(r.Context(), topic.MoveInput{TopicID: id, NewParentID: parentID})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// ToggleCheckpoint handles PUT /api/topics/{id}/checkpoints/{offsetDays}/toggle.
func (h *TopicHandler) ToggleCheckpoint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	offsetDays, err := strconv.Atoi(r.PathValue("offsetDays"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid checkpoint offset")
		return
	}

	t, err := h.svc.ToggleCheckpoint(r.Context(), topic.ToggleCheckpointInput{
		TopicID:    id,
		OffsetDays: offsetDays,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// Delete handles DELETE /api/topics/{id}. Children of the deleted topic
// are moved up to its parent.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toTopicResponse(t *domain.Topic) topicResponse {
	resp := topicResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Checkpoints: make([]checkpointResponse, 0, len(t.Checkpoints)),
	}
	if t.ParentID != nil {
		parentID := t.ParentID.String()
		resp.ParentID = &parentID
	}
	now := time.Now().UTC()
	for _, cp := range t.Checkpoints {
		resp.Checkpoints = append(resp.Checkpoints, checkpointResponse{
			OffsetDays:  cp.OffsetDays,
			DueDate:     cp.DueDate,
			CompletedAt: cp.CompletedAt,
			IsCompleted: cp.IsCompleted(),
			Status:      schedule.Classify(cp, now).String(),
		})
	}
	return resp
}

func toTreeNodeResponse(n *domain.TreeNode) treeNodeResponse {
	resp := treeNodeResponse{
		topicResponse: toTopicResponse(n.Topic),
		Children:      make([]treeNodeResponse, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		resp.Children = append(resp.Children, toTreeNodeResponse(child))
	}
	return resp
}
