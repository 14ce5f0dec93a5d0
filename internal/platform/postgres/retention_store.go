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

// RetentionStore implements the store.RetentionStore interface using a
// PostgreSQL database as the storage backend. The unique index on
// (user_id, word_id) plus GetForUpdate's row lock is what guarantees
// at-most-one in-flight retention update per pair.
type RetentionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRetentionStore creates a new PostgreSQL implementation of the
// RetentionStore interface.
func NewRetentionStore(db store.DBTX, logger *slog.Logger) *RetentionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RetentionStore{
		db:     db,
		logger: logger.With(slog.String("component", "retention_store")),
	}
}

// Ensure RetentionStore implements store.RetentionStore interface
var _ store.RetentionStore = (*RetentionStore)(nil)

// WithTx implements store.RetentionStore.WithTx
func (s *RetentionStore) WithTx(tx *sql.Tx) store.RetentionStore {
	return &RetentionStore{db: tx, logger: s.logger}
}

const retentionColumns = `id, user_id, word_id, repetitions, ease_factor, interval_days, next_review, last_review`

// Find implements store.RetentionStore.Find
func (s *RetentionStore) Find(
	ctx context.Context,
	learnerID string,
	wordID int64,
) (*domain.RetentionState, error) {
	query := `
		SELECT ` + retentionColumns + `
		FROM user_progress
		WHERE user_id = $1 AND word_id = $2`

	return s.queryOne(ctx, query, learnerID, wordID)
}

// GetForUpdate implements store.RetentionStore.GetForUpdate
// The FOR UPDATE clause blocks concurrent transactions touching the same
// row until this transaction commits or rolls back.
func (s *RetentionStore) GetForUpdate(
	ctx context.Context,
	learnerID string,
	wordID int64,
) (*domain.RetentionState, error) {
	query := `
		SELECT ` + retentionColumns + `
		FROM user_progress
		WHERE user_id = $1 AND word_id = $2
		FOR UPDATE`

	return s.queryOne(ctx, query, learnerID, wordID)
}

func (s *RetentionStore) queryOne(
	ctx context.Context,
	query string,
	learnerID string,
	wordID int64,
) (*domain.RetentionState, error) {
	state, err := scanRetentionState(s.db.QueryRowContext(ctx, query, learnerID, wordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRetentionStateNotFound
		}
		return nil, MapError(err)
	}
	return state, nil
}

// FindAllForLearner implements store.RetentionStore.FindAllForLearner
func (s *RetentionStore) FindAllForLearner(
	ctx context.Context,
	learnerID string,
) ([]*domain.RetentionState, error) {
	query := `
		SELECT ` + retentionColumns + `
		FROM user_progress
		WHERE user_id = $1
		ORDER BY word_id ASC`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	var states []*domain.RetentionState
	for rows.Next() {
		state, err := scanRetentionState(rows)
		if err != nil {
			return nil, MapError(err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return states, nil
}

// FindDueWords implements store.RetentionStore.FindDueWords
// Ordering is part of the contract: earliest due first, word ID as the
// deterministic tie-break.
func (s *RetentionStore) FindDueWords(
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
		JOIN user_progress p ON p.word_id = w.id
		WHERE p.user_id = $1
		  AND (p.next_review IS NULL OR p.next_review <= NOW())
		ORDER BY p.next_review ASC NULLS FIRST, w.id ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	return collectWords(rows)
}

// Save implements store.RetentionStore.Save
// Inserts when the ID is zero, updates otherwise.
func (s *RetentionStore) Save(
	ctx context.Context,
	state *domain.RetentionState,
) (*domain.RetentionState, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	saved := *state
	if state.ID == 0 {
		query := `
			INSERT INTO user_progress
				(user_id, word_id, repetitions, ease_factor, interval_days, next_review, last_review)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`

		err := s.db.QueryRowContext(
			ctx, query,
			state.LearnerID, state.WordID, state.Repetitions, state.EaseFactor,
			state.IntervalDays, state.NextReviewAt, state.LastReviewedAt,
		).Scan(&saved.ID)
		if err != nil {
			return nil, MapError(err)
		}
		return &saved, nil
	}

	query := `
		UPDATE user_progress
		SET repetitions = $2, ease_factor = $3, interval_days = $4,
		    next_review = $5, last_review = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(
		ctx, query,
		state.ID, state.Repetitions, state.EaseFactor, state.IntervalDays,
		state.NextReviewAt, state.LastReviewedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, MapError(err)
	}
	if affected == 0 {
		return nil, store.ErrRetentionStateNotFound
	}

	return &saved, nil
}

// CountStudied implements store.RetentionStore.CountStudied
func (s *RetentionStore) CountStudied(ctx context.Context, learnerID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_progress WHERE user_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, learnerID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// CountDue implements store.RetentionStore.CountDue
func (s *RetentionStore) CountDue(ctx context.Context, learnerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_progress
		WHERE user_id = $1
		  AND (next_review IS NULL OR next_review <= NOW())`

	var count int
	if err := s.db.QueryRowContext(ctx, query, learnerID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func scanRetentionState(row rowScanner) (*domain.RetentionState, error) {
	var state domain.RetentionState
	var nextReview, lastReview sql.NullTime

	err := row.Scan(
		&state.ID, &state.LearnerID, &state.WordID, &state.Repetitions,
		&state.EaseFactor, &state.IntervalDays, &nextReview, &lastReview,
	)
	if err != nil {
		return nil, err
	}

	if nextReview.Valid {
		t := nextReview.Time
		state.NextReviewAt = &t
	}
	if lastReview.Valid {
		t := lastReview.Time
		state.LastReviewedAt = &t
	}
	return &state, nil
}
