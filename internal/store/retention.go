package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// RetentionStore defines the interface for retention state persistence.
// It is the component that enforces the at-most-one in-flight update
// guarantee per (learner, word) pair, via GetForUpdate's row lock.
type RetentionStore interface {
	// Find retrieves the retention state for a (learner, word) pair.
	// Returns ErrRetentionStateNotFound if no state exists yet.
	// This method takes no lock; do not use it for read-modify-write.
	Find(ctx context.Context, learnerID string, wordID int64) (*domain.RetentionState, error)

	// GetForUpdate retrieves retention state with a row-level lock using
	// SELECT ... FOR UPDATE. It must be called within a transaction; the
	// lock serializes concurrent updates to the same pair until commit.
	// Returns ErrRetentionStateNotFound if no state exists yet.
	GetForUpdate(ctx context.Context, learnerID string, wordID int64) (*domain.RetentionState, error)

	// FindAllForLearner retrieves every retention state for a learner,
	// ordered by word ID ascending.
	FindAllForLearner(ctx context.Context, learnerID string) ([]*domain.RetentionState, error)

	// FindDueWords retrieves up to limit words whose retention state for
	// this learner is due, ordered by next review ascending with word ID
	// ascending as the tie-break. Earliest-due first guarantees the oldest
	// review debt is repaid first.
	FindDueWords(ctx context.Context, learnerID string, limit int) ([]*domain.Word, error)

	// Save inserts the state when its ID is zero and updates it otherwise.
	// Returns the persisted state with its ID populated.
	Save(ctx context.Context, state *domain.RetentionState) (*domain.RetentionState, error)

	// CountStudied returns the number of words the learner has retention
	// state for.
	CountStudied(ctx context.Context, learnerID string) (int, error)

	// CountDue returns the number of words currently due for the learner.
	CountDue(ctx context.Context, learnerID string) (int, error)

	// WithTx returns a new RetentionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) RetentionStore
}
