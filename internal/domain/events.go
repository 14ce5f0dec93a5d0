package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names emitted by the retention state machine.
const (
	EventSessionCompleted = "study.session_completed"
	EventWordLearned      = "study.word_learned"
)

// Event is a fact about something that happened in the scheduling domain.
// Events are emitted by the retention transition and fanned out to
// registered handlers after the triggering command commits.
type Event interface {
	// EventID is a unique identifier for this occurrence.
	EventID() uuid.UUID

	// EventName identifies the kind of event.
	EventName() string

	// OccurredAt is when the event happened.
	OccurredAt() time.Time
}

// baseEvent carries the fields shared by all domain events.
type baseEvent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	At   time.Time `json:"occurred_at"`
}

func (e baseEvent) EventID() uuid.UUID    { return e.ID }
func (e baseEvent) EventName() string     { return e.Name }
func (e baseEvent) OccurredAt() time.Time { return e.At }

func newBaseEvent(name string, at time.Time) baseEvent {
	return baseEvent{ID: uuid.New(), Name: name, At: at}
}

// SessionCompleted is emitted on every answered review.
type SessionCompleted struct {
	baseEvent
	LearnerID   string  `json:"learner_id"`
	WordID      int64   `json:"word_id"`
	Quality     int     `json:"quality"`
	Repetitions int     `json:"repetitions"`
	EaseFactor  float64 `json:"ease_factor"`
}

// NewSessionCompleted creates a SessionCompleted event from the state that
// resulted from the answer.
func NewSessionCompleted(state *RetentionState, quality Quality, at time.Time) *SessionCompleted {
	return &SessionCompleted{
		baseEvent:   newBaseEvent(EventSessionCompleted, at),
		LearnerID:   state.LearnerID,
		WordID:      state.WordID,
		Quality:     quality.Value(),
		Repetitions: state.Repetitions,
		EaseFactor:  state.EaseFactor,
	}
}

// WordLearned is emitted the first time a learner answers a word correctly.
type WordLearned struct {
	baseEvent
	LearnerID string `json:"learner_id"`
	WordID    int64  `json:"word_id"`
}

// NewWordLearned creates a WordLearned event.
func NewWordLearned(learnerID string, wordID int64, at time.Time) *WordLearned {
	return &WordLearned{
		baseEvent: newBaseEvent(EventWordLearned, at),
		LearnerID: learnerID,
		WordID:    wordID,
	}
}
