package study

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/store"
)

func pairKey(learnerID string, wordID int64) string {
	return fmt.Sprintf("%s:%d", learnerID, wordID)
}

// fakeWordStore is an in-memory store.WordStore for handler tests.
type fakeWordStore struct {
	mu            sync.Mutex
	words         map[int64]*domain.Word
	unstudied     []*domain.Word
	nextID        int64
	saveErr       error
	findByIDCalls int
}

var _ store.WordStore = (*fakeWordStore)(nil)

func newFakeWordStore(words ...*domain.Word) *fakeWordStore {
	s := &fakeWordStore{words: make(map[int64]*domain.Word)}
	for _, w := range words {
		s.words[w.ID] = w
		if w.ID > s.nextID {
			s.nextID = w.ID
		}
	}
	return s
}

func (s *fakeWordStore) FindByID(_ context.Context, id int64) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findByIDCalls++
	word, ok := s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return word, nil
}

func (s *fakeWordStore) FindByIDs(_ context.Context, ids []int64) ([]*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.Word
	for _, id := range ids {
		if w, ok := s.words[id]; ok {
			matched = append(matched, w)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (s *fakeWordStore) FindAll(_ context.Context) ([]*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*domain.Word, 0, len(s.words))
	for _, w := range s.words {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *fakeWordStore) FindByDifficulty(
	_ context.Context,
	level domain.DifficultyLevel,
	limit int,
) ([]*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.Word
	for _, w := range s.words {
		if w.DifficultyLevel == level {
			matched = append(matched, w)
		}
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (s *fakeWordStore) FindUnstudied(
	_ context.Context,
	_ string,
	limit int,
) ([]*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.unstudied) {
		limit = len(s.unstudied)
	}
	return s.unstudied[:limit], nil
}

func (s *fakeWordStore) Save(_ context.Context, word *domain.Word) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	for _, existing := range s.words {
		if existing.Text == word.Text && existing.ID != word.ID {
			return nil, store.ErrWordExists
		}
	}
	saved := *word
	if saved.ID == 0 {
		s.nextID++
		saved.ID = s.nextID
	}
	s.words[saved.ID] = &saved
	return &saved, nil
}

func (s *fakeWordStore) WithTx(_ *sql.Tx) store.WordStore { return s }

// fakeRetentionStore is an in-memory store.RetentionStore. The due slice is
// returned from FindDueWords verbatim, up to the requested limit.
type fakeRetentionStore struct {
	mu                sync.Mutex
	states            map[string]*domain.RetentionState
	due               []*domain.Word
	dueCount          int
	nextID            int64
	getForUpdateCalls int

	// rowLocks, when non-nil, makes GetForUpdate hold a per-pair lock until
	// the next Save for that pair, mirroring the postgres store's
	// SELECT ... FOR UPDATE held to commit.
	rowLocks map[string]*sync.Mutex
}

var _ store.RetentionStore = (*fakeRetentionStore)(nil)

func newFakeRetentionStore() *fakeRetentionStore {
	return &fakeRetentionStore{states: make(map[string]*domain.RetentionState)}
}

func (s *fakeRetentionStore) Find(
	_ context.Context,
	learnerID string,
	wordID int64,
) (*domain.RetentionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[pairKey(learnerID, wordID)]
	if !ok {
		return nil, store.ErrRetentionStateNotFound
	}
	return state.Clone(), nil
}

func (s *fakeRetentionStore) GetForUpdate(
	ctx context.Context,
	learnerID string,
	wordID int64,
) (*domain.RetentionState, error) {
	s.mu.Lock()
	s.getForUpdateCalls++
	var rowLock *sync.Mutex
	if s.rowLocks != nil {
		key := pairKey(learnerID, wordID)
		rowLock = s.rowLocks[key]
		if rowLock == nil {
			rowLock = &sync.Mutex{}
			s.rowLocks[key] = rowLock
		}
	}
	s.mu.Unlock()

	if rowLock != nil {
		rowLock.Lock()
	}
	return s.Find(ctx, learnerID, wordID)
}

func (s *fakeRetentionStore) FindAllForLearner(
	_ context.Context,
	learnerID string,
) ([]*domain.RetentionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var states []*domain.RetentionState
	for _, state := range s.states {
		if state.LearnerID == learnerID {
			states = append(states, state.Clone())
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i].WordID < states[j].WordID })
	return states, nil
}

func (s *fakeRetentionStore) FindDueWords(
	_ context.Context,
	_ string,
	limit int,
) ([]*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.due) {
		limit = len(s.due)
	}
	return s.due[:limit], nil
}

func (s *fakeRetentionStore) Save(
	_ context.Context,
	state *domain.RetentionState,
) (*domain.RetentionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := state.Clone()
	if saved.ID == 0 {
		s.nextID++
		saved.ID = s.nextID
	}
	key := pairKey(saved.LearnerID, saved.WordID)
	s.states[key] = saved
	if s.rowLocks != nil {
		if rowLock := s.rowLocks[key]; rowLock != nil {
			rowLock.Unlock()
		}
	}
	return saved.Clone(), nil
}

func (s *fakeRetentionStore) CountStudied(_ context.Context, learnerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, state := range s.states {
		if state.LearnerID == learnerID {
			count++
		}
	}
	return count, nil
}

func (s *fakeRetentionStore) CountDue(_ context.Context, _ string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dueCount, nil
}

func (s *fakeRetentionStore) WithTx(_ *sql.Tx) store.RetentionStore { return s }

// fakeSessionStore is an in-memory store.SessionStore.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions []*domain.StudySession
	nextID   int64
}

var _ store.SessionStore = (*fakeSessionStore)(nil)

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{}
}

func (s *fakeSessionStore) Save(
	_ context.Context,
	session *domain.StudySession,
) (*domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *session
	s.nextID++
	saved.ID = s.nextID
	s.sessions = append(s.sessions, &saved)
	return &saved, nil
}

func (s *fakeSessionStore) FindByLearner(
	_ context.Context,
	learnerID string,
) ([]*domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.StudySession
	for _, session := range s.sessions {
		if session.LearnerID == learnerID {
			matched = append(matched, session)
		}
	}
	return matched, nil
}

func (s *fakeSessionStore) FindByWord(
	_ context.Context,
	wordID int64,
) ([]*domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.StudySession
	for _, session := range s.sessions {
		if session.WordID == wordID {
			matched = append(matched, session)
		}
	}
	return matched, nil
}

func (s *fakeSessionStore) CountTotal(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), nil
}

func (s *fakeSessionStore) CountCorrect(_ context.Context, wordID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, session := range s.sessions {
		if session.WordID == wordID && session.Correct {
			count++
		}
	}
	return count, nil
}

func (s *fakeSessionStore) CountDistinctLearners(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	learners := make(map[string]bool)
	for _, session := range s.sessions {
		learners[session.LearnerID] = true
	}
	return len(learners), nil
}

func (s *fakeSessionStore) WithTx(_ *sql.Tx) store.SessionStore { return s }
