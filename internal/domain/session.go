package domain

import (
	"fmt"
	"time"
)

// StudySession is an immutable audit record of one answered review.
// Sessions are appended once per answer submission and never mutated
// or deleted. Correct is derived from the quality score (>= 3).
type StudySession struct {
	ID                  int64     `json:"id"`
	WordID              int64     `json:"word_id"`
	LearnerID           string    `json:"learner_id"`
	Correct             bool      `json:"correct"`
	ResponseTimeSeconds float64   `json:"response_time"`
	AnsweredAt          time.Time `json:"answered_at"`
	Quality             Quality   `json:"quality"`
}

// NewStudySession creates a session record for one answer. AnsweredAt should
// be the LastReviewedAt of the retention state updated by the same answer so
// the two records stay time-consistent.
func NewStudySession(
	learnerID string,
	wordID int64,
	quality Quality,
	responseTimeSeconds float64,
	answeredAt time.Time,
) (*StudySession, error) {
	session := &StudySession{
		WordID:              wordID,
		LearnerID:           learnerID,
		Correct:             quality.IsCorrect(),
		ResponseTimeSeconds: responseTimeSeconds,
		AnsweredAt:          answeredAt,
		Quality:             quality,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if err := ValidateLearnerID(s.LearnerID); err != nil {
		return err
	}
	if s.WordID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWordID, s.WordID)
	}
	if s.ResponseTimeSeconds < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidResponseTime, s.ResponseTimeSeconds)
	}
	if s.Quality < 0 || s.Quality > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, s.Quality)
	}
	return nil
}

// IsFastResponse reports whether the answer took under two seconds.
func (s *StudySession) IsFastResponse() bool {
	return s.ResponseTimeSeconds < 2.0
}

// IsSlowResponse reports whether the answer took over ten seconds.
func (s *StudySession) IsSlowResponse() bool {
	return s.ResponseTimeSeconds > 10.0
}
