package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/store"
)

// WordStore implements the store.WordStore interface using a PostgreSQL
// database as the storage backend.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWordStore creates a new PostgreSQL implementation of the WordStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewWordStore(db store.DBTX, logger *slog.Logger) *WordStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure WordStore implements store.WordStore interface
var _ store.WordStore = (*WordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *WordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &WordStore{db: tx, logger: s.logger}
}

// FindByID implements store.WordStore.FindByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *WordStore) FindByID(ctx context.Context, id int64) (*domain.Word, error) {
	query := `
		SELECT id, word, frequency_rank, difficulty_level
		FROM words
		WHERE id = $1`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	return word, nil
}

// FindAll implements store.WordStore.FindAll
func (s *WordStore) FindAll(ctx context.Context) ([]*domain.Word, error) {
	query := `
		SELECT id, word, frequency_rank, difficulty_level
		FROM words
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	return collectWords(rows)
}

// FindByIDs implements store.WordStore.FindByIDs
// One round trip regardless of how many IDs are requested.
func (s *WordStore) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, word, frequency_rank, difficulty_level
		FROM words
		WHERE id = ANY($1)
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	return collectWords(rows)
}

// FindByDifficulty implements store.WordStore.FindByDifficulty
func (s *WordStore) FindByDifficulty(
	ctx context.Context,
	level domain.DifficultyLevel,
	limit int,
) ([]*domain.Word, error) {
	query := `
		SELECT id, word, frequency_rank, difficulty_level
		FROM words
		WHERE difficulty_level = $1
		ORDER BY id ASC`
	args := []any{level.Value()}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	return collectWords(rows)
}

// FindUnstudied implements store.WordStore.FindUnstudied
// It returns words with no retention state for the learner, in ascending ID
// order so the fill set stays deterministic.
func (s *WordStore) FindUnstudied(
	ctx context.Context,
	learnerID string,
	limit int,
) ([]*domain.Word, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT w.id, w.word, w.frequency_rank, w.difficulty_level
		FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM user_progress p
			WHERE p.word_id = w.id AND p.user_id = $1
		)
		ORDER BY w.id ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	return collectWords(rows)
}

// Save implements store.WordStore.Save
// Inserts when the ID is zero, updates otherwise.
func (s *WordStore) Save(ctx context.Context, word *domain.Word) (*domain.Word, error) {
	if err := word.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	saved := *word
	if word.ID == 0 {
		query := `
			INSERT INTO words (word, frequency_rank, difficulty_level)
			VALUES ($1, $2, $3)
			RETURNING id`

		err := s.db.QueryRowContext(
			ctx, query,
			word.Text, word.FrequencyRank.Value(), word.DifficultyLevel.Value(),
		).Scan(&saved.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return nil, store.ErrWordExists
			}
			return nil, MapError(err)
		}
		return &saved, nil
	}

	query := `
		UPDATE words
		SET word = $2, frequency_rank = $3, difficulty_level = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(
		ctx, query,
		word.ID, word.Text, word.FrequencyRank.Value(), word.DifficultyLevel.Value(),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, store.ErrWordExists
		}
		return nil, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, MapError(err)
	}
	if affected == 0 {
		return nil, store.ErrWordNotFound
	}

	return &saved, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	err := row.Scan(&word.ID, &word.Text, &word.FrequencyRank, &word.DifficultyLevel)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return words, nil
}

func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
