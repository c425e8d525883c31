package topic

import (
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/config"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// CreateInput holds the parameters for creating a topic.
type CreateInput struct {
	Name     string
	Notes    *string
	ParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate(cfg config.TopicsConfig) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > cfg.MaxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Notes != nil && len(*i.Notes) > cfg.MaxNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds the parameters for listing topics.
type ListInput struct {
	Search *string
}

// RenameInput holds the parameters for renaming a topic.
type RenameInput struct {
	TopicID uuid.UUID
	Name    string
}

// Validate checks all fields and collects all errors.
func (i *RenameInput) Validate(cfg config.TopicsConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > cfg.MaxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateNotesInput holds the parameters for updating topic notes.
type UpdateNotesInput struct {
	TopicID uuid.UUID
	Notes   string
}

// Validate checks all fields and collects all errors.
func (i *UpdateNotesInput) Validate(cfg config.TopicsConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if len(i.Notes) > cfg.MaxNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveInput holds the parameters for re-parenting a topic.
// A nil NewParentID promotes the topic to a root.
type MoveInput struct {
	TopicID     uuid.UUID
	NewParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *MoveInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.NewParentID != nil && *i.NewParentID == i.TopicID {
		errs = append(errs, domain.FieldError{Field: "new_parent_id", Message: "topic cannot be its own parent"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ToggleCheckpointInput holds the parameters for flipping a checkpoint.
type ToggleCheckpointInput struct {
	TopicID    uuid.UUID
	OffsetDays int
}

// Validate checks all fields and collects all errors. An unknown offset
// is not a validation failure: the use case reports it as not found, the
// same as a missing checkpoint row.
func (i *ToggleCheckpointInput) Validate() error {
	if i.TopicID == uuid.Nil {
		return domain.NewValidationError("topic_id", "required")
	}
	return nil
}
