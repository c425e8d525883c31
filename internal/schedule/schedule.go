// Package schedule defines the fixed review schedule and the single
// source of truth for checkpoint classification. Both the topic tree
// and the dashboard aggregates go through these functions, so their
// counts can never disagree.
package schedule

import (
	"time"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// Offsets are the fixed review offsets in days after topic creation,
// ascending. Every topic carries exactly one checkpoint per offset.
var Offsets = [4]int{1, 3, 7, 21}

// ValidOffset reports whether d is one of the fixed review offsets.
func ValidOffset(d int) bool {
	for _, o := range Offsets {
		if o == d {
			return true
		}
	}
	return false
}

// NewCheckpoints produces the full checkpoint set for a topic created
// at createdAt: one incomplete checkpoint per offset, due exactly
// offset days after creation. Deterministic, no failure modes.
func NewCheckpoints(createdAt time.Time) []domain.Checkpoint {
	cps := make([]domain.Checkpoint, 0, len(Offsets))
	for _, offset := range Offsets {
		cps = append(cps, domain.Checkpoint{
			OffsetDays: offset,
			DueDate:    createdAt.AddDate(0, 0, offset),
		})
	}
	return cps
}

// Status classifies a checkpoint relative to a point in time.
type Status int

const (
	StatusPending Status = iota
	StatusOverdue
	StatusCompleted
)

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusOverdue:
		return "overdue"
	default:
		return "pending"
	}
}

// Classify returns the checkpoint's status at the given time:
// completed when marked done, overdue when its due date has passed,
// pending otherwise.
func Classify(cp domain.Checkpoint, now time.Time) Status {
	if cp.IsCompleted() {
		return StatusCompleted
	}
	if cp.DueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}

// IsDueToday reports whether the checkpoint is incomplete and falls due
// on the same calendar day as now. Calendar days are compared in UTC on
// both sides regardless of where the process runs, so client and server
// renditions of "due today" always agree.
func IsDueToday(cp domain.Checkpoint, now time.Time) bool {
	if cp.IsCompleted() {
		return false
	}
	return sameUTCDay(cp.DueDate, now)
}

func sameUTCDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}
