package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/store"
)

// SessionStore implements the store.SessionStore interface using a
// PostgreSQL database as the storage backend. Rows are append-only; there
// is deliberately no update or delete here.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// WithTx implements store.SessionStore.WithTx
func (s *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &SessionStore{db: tx, logger: s.logger}
}

const sessionColumns = `id, word_id, user_id, correct, response_time, answered_at, quality`

// Save implements store.SessionStore.Save
func (s *SessionStore) Save(
	ctx context.Context,
	session *domain.StudySession,
) (*domain.StudySession, error) {
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions
			(word_id, user_id, correct, response_time, answered_at, quality)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	saved := *session
	err := s.db.QueryRowContext(
		ctx, query,
		session.WordID, session.LearnerID, session.Correct,
		session.ResponseTimeSeconds, session.AnsweredAt, session.Quality.Value(),
	).Scan(&saved.ID)
	if err != nil {
		return nil, MapError(err)
	}
	return &saved, nil
}

// FindByLearner implements store.SessionStore.FindByLearner
func (s *SessionStore) FindByLearner(
	ctx context.Context,
	learnerID string,
) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY answered_at DESC, id DESC`

	return s.queryMany(ctx, query, learnerID)
}

// FindByWord implements store.SessionStore.FindByWord
func (s *SessionStore) FindByWord(
	ctx context.Context,
	wordID int64,
) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE word_id = $1
		ORDER BY answered_at DESC, id DESC`

	return s.queryMany(ctx, query, wordID)
}

// CountTotal implements store.SessionStore.CountTotal
func (s *SessionStore) CountTotal(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions`).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// CountCorrect implements store.SessionStore.CountCorrect
func (s *SessionStore) CountCorrect(ctx context.Context, wordID int64) (int, error) {
	query := `SELECT COUNT(*) FROM study_sessions WHERE word_id = $1 AND correct`

	var count int
	if err := s.db.QueryRowContext(ctx, query, wordID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// CountDistinctLearners implements store.SessionStore.CountDistinctLearners
func (s *SessionStore) CountDistinctLearners(ctx context.Context) (int, error) {
	query := `SELECT COUNT(DISTINCT user_id) FROM study_sessions`

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func (s *SessionStore) queryMany(
	ctx context.Context,
	query string,
	arg any,
) ([]*domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, MapError(err)
	}
	defer closeRows(rows, s.logger)

	var sessions []*domain.StudySession
	for rows.Next() {
		var session domain.StudySession
		var quality int
		err := rows.Scan(
			&session.ID, &session.WordID, &session.LearnerID, &session.Correct,
			&session.ResponseTimeSeconds, &session.AnsweredAt, &quality,
		)
		if err != nil {
			return nil, MapError(err)
		}
		session.Quality = domain.Quality(quality)
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return sessions, nil
}
