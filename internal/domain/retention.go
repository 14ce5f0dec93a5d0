package domain

import (
	"fmt"
	"time"
)

// SM-2 scheduling defaults for a pair that has never been reviewed.
const (
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
	DefaultIntervalDays = 1
)

// RetentionState holds the SM-2 scheduling parameters for one
// (learner, word) pair. It is created lazily on the first answer,
// mutated exclusively through the srs package's transition function,
// and never deleted in normal operation.
//
// NextReviewAt and LastReviewedAt are nil until the first review;
// a pair with no NextReviewAt is always due.
type RetentionState struct {
	ID             int64      `json:"id"`
	LearnerID      string     `json:"learner_id"`
	WordID         int64      `json:"word_id"`
	Repetitions    int        `json:"repetitions"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	NextReviewAt   *time.Time `json:"next_review"`
	LastReviewedAt *time.Time `json:"last_review"`
}

// NewRetentionState creates fresh retention state for a learner/word pair
// with SM-2 defaults. The pair is immediately due for review.
func NewRetentionState(learnerID string, wordID int64) (*RetentionState, error) {
	state := &RetentionState{
		LearnerID:    learnerID,
		WordID:       wordID,
		Repetitions:  0,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the RetentionState has valid data.
// Returns an error if any field fails validation.
func (s *RetentionState) Validate() error {
	if err := ValidateLearnerID(s.LearnerID); err != nil {
		return err
	}
	if s.WordID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWordID, s.WordID)
	}
	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	if s.EaseFactor < MinEaseFactor {
		return fmt.Errorf("%w: got %g", ErrInvalidEaseFactor, s.EaseFactor)
	}
	if s.IntervalDays < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, s.IntervalDays)
	}
	return nil
}

// IsDueForReview reports whether the pair should be reviewed at the given
// time. A pair that has never been scheduled is always due.
func (s *RetentionState) IsDueForReview(now time.Time) bool {
	if s.NextReviewAt == nil {
		return true
	}
	return !now.Before(*s.NextReviewAt)
}

// Clone returns a copy of the state. The srs transition function uses this
// to return a new instance instead of mutating its input.
func (s *RetentionState) Clone() *RetentionState {
	clone := *s
	if s.NextReviewAt != nil {
		t := *s.NextReviewAt
		clone.NextReviewAt = &t
	}
	if s.LastReviewedAt != nil {
		t := *s.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	return &clone
}
