// Package topic implements the Topic repository using PostgreSQL.
// A topic row always travels with its checkpoint rows; every read
// returns fully hydrated domain.Topic values.
package topic

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, user_id, parent_id, name, notes, created_at, updated_at
FROM topics
WHERE id = $1`

const insertTopicSQL = `
INSERT INTO topics (user_id, parent_id, name, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING id, user_id, parent_id, name, notes, created_at, updated_at`

const insertCheckpointsSQL = `
INSERT INTO topic_checkpoints (topic_id, offset_days, due_date)
SELECT $1, unnest($2::int[]), unnest($3::timestamptz[])`

const checkpointsByTopicIDsSQL = `
SELECT topic_id, offset_days, due_date, completed_at
FROM topic_checkpoints
WHERE topic_id = ANY($1::uuid[])
ORDER BY topic_id, offset_days`

const lockCheckpointSQL = `
SELECT completed_at
FROM topic_checkpoints
WHERE topic_id = $1 AND offset_days = $2
FOR UPDATE`

const flipCheckpointSQL = `
UPDATE topic_checkpoints
SET completed_at = $3
WHERE topic_id = $1 AND offset_days = $2`

const reparentChildrenSQL = `
UPDATE topics
SET parent_id = $2, updated_at = now()
WHERE parent_id = $1`

const deleteTopicSQL = `DELETE FROM topics WHERE id = $1 AND user_id = $2`

const countByUserSQL = `SELECT count(*) FROM topics WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a topic with its checkpoints.
// Returns domain.ErrNotFound if no such topic exists and domain.ErrForbidden
// if it exists but belongs to another user. The record is never returned
// cross-user.
func (r *Repo) GetByID(ctx context.Context, userID, topicID uuid.UUID) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopicRow(q.QueryRow(ctx, getByIDSQL, topicID))
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}

	if t.UserID != userID {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrForbidden)
	}

	if err := r.attachCheckpoints(ctx, q, []*domain.Topic{t}); err != nil {
		return nil, fmt.Errorf("load checkpoints: %w", err)
	}

	return t, nil
}

// List returns all topics for a user with their checkpoints, applying the
// optional filter. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.TopicFilter) ([]*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select("id", "user_id", "parent_id", "name", "notes", "created_at", "updated_at").
		From("topics").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id")

	if filter.Search != nil && *filter.Search != "" {
		builder = builder.Where(sq.ILike{"name": "%" + *filter.Search + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics, err := scanTopics(rows)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	if err := r.attachCheckpoints(ctx, q, topics); err != nil {
		return nil, fmt.Errorf("load checkpoints: %w", err)
	}

	return topics, nil
}

// Count returns the number of topics for a user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a topic together with its full checkpoint set and returns
// the persisted record. Callers are expected to run it inside a transaction
// so a topic can never exist without its checkpoints.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, topic *domain.Topic) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanTopicRow(q.QueryRow(ctx, insertTopicSQL,
		userID, topic.ParentID, topic.Name, topic.Notes, topic.CreatedAt))
	if err != nil {
		return nil, postgres.MapError(err, "topic", uuid.Nil)
	}

	offsets := make([]int, len(topic.Checkpoints))
	dueDates := make([]time.Time, len(topic.Checkpoints))
	for i, cp := range topic.Checkpoints {
		offsets[i] = cp.OffsetDays
		dueDates[i] = cp.DueDate
	}

	if _, err := q.Exec(ctx, insertCheckpointsSQL, created.ID, offsets, dueDates); err != nil {
		return nil, postgres.MapError(err, "topic_checkpoint", created.ID)
	}

	created.Checkpoints = topic.Checkpoints
	return created, nil
}

// Update applies a partial update (name and/or notes) to a topic owned by
// the user and returns the refreshed record.
func (r *Repo) Update(ctx context.Context, userID, topicID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Update("topics").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": topicID, "user_id": userID})

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Notes != nil {
		builder = builder.Set("notes", *params.Notes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return r.GetByID(ctx, userID, topicID)
}

// UpdateParent moves a topic under a new parent (nil makes it a root).
// Cycle and ownership checks are the service's job; this is a plain write.
func (r *Repo) UpdateParent(ctx context.Context, userID, topicID uuid.UUID, parentID *uuid.UUID) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Update("topics").
		Set("parent_id", parentID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": topicID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reparent query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return r.GetByID(ctx, userID, topicID)
}

// ToggleCheckpoint flips a checkpoint's completion state: incomplete
// becomes completed at now, completed becomes incomplete again. The row is
// locked for the duration of the surrounding transaction, so two concurrent
// toggles of the same checkpoint serialize instead of tearing.
// Returns domain.ErrNotFound when the offset has no checkpoint row.
func (r *Repo) ToggleCheckpoint(ctx context.Context, topicID uuid.UUID, offsetDays int, now time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var completedAt pgtype.Timestamptz
	if err := q.QueryRow(ctx, lockCheckpointSQL, topicID, offsetDays).Scan(&completedAt); err != nil {
		return postgres.MapError(err, "topic_checkpoint", topicID)
	}

	var next *time.Time
	if !completedAt.Valid {
		next = &now
	}

	if _, err := q.Exec(ctx, flipCheckpointSQL, topicID, offsetDays, next); err != nil {
		return postgres.MapError(err, "topic_checkpoint", topicID)
	}

	return nil
}

// ReparentChildren moves every direct child of topicID under newParentID
// (nil promotes them to roots). Used by delete to keep the forest intact.
func (r *Repo) ReparentChildren(ctx context.Context, topicID uuid.UUID, newParentID *uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, reparentChildrenSQL, topicID, newParentID); err != nil {
		return postgres.MapError(err, "topic", topicID)
	}

	return nil
}

// Delete removes a topic; its checkpoints go with it via FK cascade.
// Returns domain.ErrNotFound if the topic does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, topicID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteTopicSQL, topicID, userID)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTopicRow(row pgx.Row) (*domain.Topic, error) {
	var (
		t        domain.Topic
		parentID pgtype.UUID
	)

	if err := row.Scan(&t.ID, &t.UserID, &parentID, &t.Name, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	if parentID.Valid {
		id := uuid.UUID(parentID.Bytes)
		t.ParentID = &id
	}

	return &t, nil
}

func scanTopics(rows pgx.Rows) ([]*domain.Topic, error) {
	var result []*domain.Topic
	for rows.Next() {
		t, err := scanTopicRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Topic{}
	}

	return result, nil
}

// attachCheckpoints loads checkpoint rows for the given topics in one query
// and distributes them onto the topic values, ordered by offset.
func (r *Repo) attachCheckpoints(ctx context.Context, q postgres.Querier, topics []*domain.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Topic, len(topics))
	ids := make([]uuid.UUID, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	rows, err := q.Query(ctx, checkpointsByTopicIDsSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			topicID     uuid.UUID
			cp          domain.Checkpoint
			completedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&topicID, &cp.OffsetDays, &cp.DueDate, &completedAt); err != nil {
			return err
		}
		if completedAt.Valid {
			ts := completedAt.Time
			cp.CompletedAt = &ts
		}
		if t, ok := byID[topicID]; ok {
			t.Checkpoints = append(t.Checkpoints, cp)
		}
	}

	return rows.Err()
}
