package study

import (
	"math"
	"time"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
	"github.com/heartmarshall/revisemaster-backend/internal/schedule"
)

// Pure aggregate functions over topic collections. Every stat goes
// through the schedule package's classification primitives so the
// dashboard, the collection filters, and the tree views can never
// disagree about what "done" or "due" means.

// OverallProgress returns the completion percentage across every
// checkpoint of every topic, rounded to the nearest integer. A
// collection with no checkpoints is 0 percent.
func OverallProgress(topics []*domain.Topic) int {
	var done, total int
	for _, t := range topics {
		for _, cp := range t.Checkpoints {
			total++
			if cp.IsCompleted() {
				done++
			}
		}
	}
	return percentage(done, total)
}

// TopicProgress returns the completion percentage for a single topic,
// 0 when it has no checkpoints.
func TopicProgress(t *domain.Topic) int {
	var done int
	for _, cp := range t.Checkpoints {
		if cp.IsCompleted() {
			done++
		}
	}
	return percentage(done, len(t.Checkpoints))
}

// IsMastered reports whether every checkpoint of the topic is complete.
// A topic without checkpoints is never mastered.
func IsMastered(t *domain.Topic) bool {
	if len(t.Checkpoints) == 0 {
		return false
	}
	for _, cp := range t.Checkpoints {
		if !cp.IsCompleted() {
			return false
		}
	}
	return true
}

// MasteredCount returns how many topics are fully reviewed.
func MasteredCount(topics []*domain.Topic) int {
	var n int
	for _, t := range topics {
		if IsMastered(t) {
			n++
		}
	}
	return n
}

// IsDueToday reports whether the topic has at least one checkpoint due
// on the current UTC calendar day and still incomplete.
func IsDueToday(t *domain.Topic, now time.Time) bool {
	for _, cp := range t.Checkpoints {
		if schedule.IsDueToday(cp, now) {
			return true
		}
	}
	return false
}

// DueTodayCount returns how many topics have a review due today.
func DueTodayCount(topics []*domain.Topic, now time.Time) int {
	var n int
	for _, t := range topics {
		if IsDueToday(t, now) {
			n++
		}
	}
	return n
}

func percentage(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
