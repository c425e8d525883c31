package domain

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a user-defined unit of study material being tracked.
// Topics form a forest via ParentID; the hierarchy is derived at read
// time and never persisted as a separate structure.
type Topic struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	UserID    uuid.UUID
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Checkpoints holds exactly one entry per fixed review offset,
	// ordered ascending by OffsetDays. Populated at creation and never
	// resized afterward.
	Checkpoints []Checkpoint
}

// Checkpoint is one scheduled review point for a topic at a fixed
// day-offset from creation. CompletedAt nil means incomplete; toggling
// is reversible.
type Checkpoint struct {
	OffsetDays  int
	DueDate     time.Time
	CompletedAt *time.Time
}

// IsCompleted reports whether the checkpoint has been marked done.
func (c Checkpoint) IsCompleted() bool {
	return c.CompletedAt != nil
}

// CheckpointByOffset returns the checkpoint with the given offset, if present.
func (t *Topic) CheckpointByOffset(offsetDays int) (Checkpoint, bool) {
	for _, cp := range t.Checkpoints {
		if cp.OffsetDays == offsetDays {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// TopicFilter defines parameters for listing user topics.
type TopicFilter struct {
	// Search performs a case-insensitive substring match on name.
	// nil or empty string means no text filter.
	Search *string
}

// TopicUpdateParams holds partial-update fields for a topic.
// nil means "leave unchanged".
type TopicUpdateParams struct {
	Name  *string
	Notes *string
}

// TreeNode is a topic with its nested children, produced by the
// hierarchy builder for tree display. Children never hold back-pointers
// to their parent.
type TreeNode struct {
	*Topic
	Children []*TreeNode
}
