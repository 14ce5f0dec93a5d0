package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// WordStore defines the interface for word persistence.
type WordStore interface {
	// FindByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Word, error)

	// FindAll retrieves every word, ordered by ID ascending.
	FindAll(ctx context.Context) ([]*domain.Word, error)

	// FindByIDs retrieves the words with the given IDs in one query, ordered
	// by ID ascending. Unknown IDs are skipped, not errors.
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Word, error)

	// FindByDifficulty retrieves words at the given difficulty level,
	// ordered by ID ascending. A limit of 0 means no limit.
	FindByDifficulty(ctx context.Context, level domain.DifficultyLevel, limit int) ([]*domain.Word, error)

	// FindUnstudied retrieves up to limit words the learner has no retention
	// state for, ordered by ID ascending. These are the yet-unprioritized
	// candidates the block assembler fills shortfalls with.
	FindUnstudied(ctx context.Context, learnerID string, limit int) ([]*domain.Word, error)

	// Save inserts the word when its ID is zero and updates it otherwise.
	// Returns the persisted word with its ID populated.
	// Returns ErrWordExists when an insert collides on the unique text.
	Save(ctx context.Context, word *domain.Word) (*domain.Word, error)

	// WithTx returns a new WordStore bound to the provided transaction.
	// The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WordStore
}
