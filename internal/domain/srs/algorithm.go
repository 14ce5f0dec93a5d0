// Package srs implements the SM-2 retention transition for one
// (learner, word) pair. The transition is a pure function: it takes the
// current retention state and a quality score and returns a new state plus
// the domain events the answer produced. Persistence and locking are the
// caller's responsibility.
package srs

import (
	"math"
	"time"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// nextInterval computes the interval in days for a correct answer.
// repetitions is the count after this answer; easeFactor and intervalDays
// are the values from before this answer. The third-and-later formula uses
// the pre-update ease factor on purpose; nextEaseFactor derives the new one
// from that same pre-update value.
func nextInterval(repetitions, intervalDays int, easeFactor float64) int {
	switch repetitions {
	case 1:
		return 1
	case 2:
		return 6
	default:
		return int(math.Floor(float64(intervalDays) * easeFactor))
	}
}

// nextEaseFactor recomputes the ease factor from the pre-update value for
// any quality score, clamped to the SM-2 floor of 1.3. It is monotonically
// non-decreasing in quality: a perfect answer adds 0.1, a blackout
// subtracts 0.8.
func nextEaseFactor(easeFactor float64, quality domain.Quality) float64 {
	q := float64(quality.Value())
	ef := easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	return math.Max(domain.MinEaseFactor, ef)
}

// apply runs one SM-2 transition and returns the new state and the events
// the answer produced. The input state is never modified.
func apply(
	state *domain.RetentionState,
	quality domain.Quality,
	now time.Time,
) (*domain.RetentionState, []domain.Event) {
	next := state.Clone()

	if quality.IsPoor() {
		// Failed recall resets the schedule; the pair comes back tomorrow.
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions++
		next.IntervalDays = nextInterval(next.Repetitions, state.IntervalDays, state.EaseFactor)
	}

	// The ease factor is recomputed on every answer, from the value the
	// interval computation above consumed.
	next.EaseFactor = nextEaseFactor(state.EaseFactor, quality)

	reviewedAt := now
	nextReview := now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = &nextReview

	events := []domain.Event{domain.NewSessionCompleted(next, quality, now)}
	if next.Repetitions == 1 && quality.IsCorrect() {
		events = append(events, domain.NewWordLearned(next.LearnerID, next.WordID, now))
	}

	return next, events
}
