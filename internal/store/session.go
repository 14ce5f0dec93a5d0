package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// SessionStore defines the interface for the append-only study session log.
// Sessions are written once and never updated or deleted.
type SessionStore interface {
	// Save appends a session record and returns it with its ID populated.
	Save(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)

	// FindByLearner retrieves every session for a learner, newest first.
	FindByLearner(ctx context.Context, learnerID string) ([]*domain.StudySession, error)

	// FindByWord retrieves every session for a word, newest first.
	FindByWord(ctx context.Context, wordID int64) ([]*domain.StudySession, error)

	// CountTotal returns the number of sessions across all learners.
	CountTotal(ctx context.Context) (int, error)

	// CountCorrect returns the number of correct sessions for a word.
	CountCorrect(ctx context.Context, wordID int64) (int, error)

	// CountDistinctLearners returns the number of distinct learners that
	// have answered at least once.
	CountDistinctLearners(ctx context.Context) (int, error)

	// WithTx returns a new SessionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SessionStore
}
