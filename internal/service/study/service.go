package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/domain/srs"
	"github.com/phrazzld/vocab-api/internal/events"
	"github.com/phrazzld/vocab-api/internal/platform/logger"
	"github.com/phrazzld/vocab-api/internal/store"
)

// Service implements the study command and query handlers. Mutating
// commands run inside a single database transaction; the retention row
// lock taken by GetForUpdate serializes concurrent answers for the same
// (learner, word) pair.
type Service struct {
	wordStore      store.WordStore
	retentionStore store.RetentionStore
	sessionStore   store.SessionStore
	srsService     srs.Service
	emitter        events.Emitter
	assembler      *Assembler
	logger         *slog.Logger
	now            func() time.Time
	runTx          func(ctx context.Context, fn store.TxFn) error
}

// NewService creates the study service.
func NewService(
	db *sql.DB,
	wordStore store.WordStore,
	retentionStore store.RetentionStore,
	sessionStore store.SessionStore,
	srsService srs.Service,
	emitter events.Emitter,
	log *slog.Logger,
) *Service {
	// ALLOW-PANIC: constructor enforces required dependencies
	if db == nil {
		panic("db cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if retentionStore == nil {
		panic("retentionStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		wordStore:      wordStore,
		retentionStore: retentionStore,
		sessionStore:   sessionStore,
		srsService:     srsService,
		emitter:        emitter,
		assembler:      NewAssembler(wordStore, retentionStore, log),
		logger:         log.With(slog.String("component", "study_service")),
		now:            func() time.Time { return time.Now().UTC() },
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// SubmitAnswer processes one answered review: it validates the input,
// applies the SM-2 transition under a row lock, persists the new retention
// state, appends the session record, and emits domain events after commit.
func (s *Service) SubmitAnswer(
	ctx context.Context,
	cmd SubmitAnswerCommand,
) (*SubmitAnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	quality, err := domain.NewQuality(cmd.Quality)
	if err != nil {
		return nil, err
	}
	if cmd.ResponseTimeSeconds < 0 {
		return nil, fmt.Errorf("%w: got %g", domain.ErrInvalidResponseTime, cmd.ResponseTimeSeconds)
	}
	if err := domain.ValidateLearnerID(cmd.LearnerID); err != nil {
		return nil, err
	}

	var (
		updated *domain.RetentionState
		emitted []domain.Event
	)
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		wordStore := s.wordStore.WithTx(tx)
		retentionStore := s.retentionStore.WithTx(tx)
		sessionStore := s.sessionStore.WithTx(tx)

		if _, err := wordStore.FindByID(ctx, cmd.WordID); err != nil {
			return err
		}

		// The row lock held until commit is what prevents two concurrent
		// answers for the same pair from double-counting repetitions.
		state, err := retentionStore.GetForUpdate(ctx, cmd.LearnerID, cmd.WordID)
		if err != nil {
			if !errors.Is(err, store.ErrRetentionStateNotFound) {
				return fmt.Errorf("failed to load retention state: %w", err)
			}
			state, err = domain.NewRetentionState(cmd.LearnerID, cmd.WordID)
			if err != nil {
				return err
			}
		}

		next, evts, err := s.srsService.Apply(state, quality, s.now())
		if err != nil {
			return err
		}

		persisted, err := retentionStore.Save(ctx, next)
		if err != nil {
			return fmt.Errorf("failed to save retention state: %w", err)
		}

		// AnsweredAt mirrors the state's LastReviewedAt so both records
		// describe the same instant.
		session, err := domain.NewStudySession(
			cmd.LearnerID,
			cmd.WordID,
			quality,
			cmd.ResponseTimeSeconds,
			*persisted.LastReviewedAt,
		)
		if err != nil {
			return err
		}
		if _, err := sessionStore.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save study session: %w", err)
		}

		updated = persisted
		emitted = evts
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			log.Warn("word not found for answer",
				slog.String("learner_id", cmd.LearnerID),
				slog.Int64("word_id", cmd.WordID))
			return nil, err
		}
		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("learner_id", cmd.LearnerID),
			slog.Int64("word_id", cmd.WordID))
		return nil, err
	}

	// Emission is best-effort; a handler failure never fails the answer
	// that already committed.
	for _, event := range emitted {
		if err := s.emitter.Emit(ctx, event); err != nil {
			log.Error("failed to emit domain event",
				slog.String("error", err.Error()),
				slog.String("event_name", event.EventName()))
		}
	}

	log.Debug("processed answer",
		slog.String("learner_id", cmd.LearnerID),
		slog.Int64("word_id", cmd.WordID),
		slog.Int("quality", quality.Value()),
		slog.Int("repetitions", updated.Repetitions),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval_days", updated.IntervalDays))

	return &SubmitAnswerResult{
		WordID:       updated.WordID,
		Quality:      quality.Value(),
		Correct:      quality.IsCorrect(),
		Repetitions:  updated.Repetitions,
		EaseFactor:   updated.EaseFactor,
		IntervalDays: updated.IntervalDays,
		NextReviewAt: updated.NextReviewAt,
	}, nil
}

// GenerateStudyBlock assembles the next study block for a learner.
func (s *Service) GenerateStudyBlock(
	ctx context.Context,
	cmd GenerateStudyBlockCommand,
) (*StudyBlock, error) {
	return s.assembler.Assemble(ctx, cmd.LearnerID, cmd.Limit)
}

// CreateWord adds a new vocabulary word. Returns store.ErrWordExists when
// a word with the same text already exists.
func (s *Service) CreateWord(ctx context.Context, cmd CreateWordCommand) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	word, err := domain.NewWord(cmd.Text, cmd.FrequencyRank, cmd.DifficultyLevel)
	if err != nil {
		return nil, err
	}

	saved, err := s.wordStore.Save(ctx, word)
	if err != nil {
		return nil, err
	}

	log.Debug("created word",
		slog.Int64("word_id", saved.ID),
		slog.String("text", saved.Text))
	return saved, nil
}

// GetLearnerProgress reports a learner's retention summary.
func (s *Service) GetLearnerProgress(
	ctx context.Context,
	query GetLearnerProgressQuery,
) (*LearnerProgress, error) {
	if err := domain.ValidateLearnerID(query.LearnerID); err != nil {
		return nil, err
	}

	states, err := s.retentionStore.FindAllForLearner(ctx, query.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load learner progress: %w", err)
	}

	studied, err := s.retentionStore.CountStudied(ctx, query.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count studied words: %w", err)
	}

	due, err := s.retentionStore.CountDue(ctx, query.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count due words: %w", err)
	}

	// Batch the word join into a single lookup rather than one per row.
	ids := make([]int64, 0, len(states))
	for _, state := range states {
		ids = append(ids, state.WordID)
	}
	words, err := s.wordStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load words for progress rows: %w", err)
	}
	wordsByID := make(map[int64]*domain.Word, len(words))
	for _, word := range words {
		wordsByID[word.ID] = word
	}

	rows := make([]*ProgressRow, 0, len(states))
	for _, state := range states {
		row := &ProgressRow{
			WordID:         state.WordID,
			Repetitions:    state.Repetitions,
			EaseFactor:     state.EaseFactor,
			IntervalDays:   state.IntervalDays,
			NextReviewAt:   state.NextReviewAt,
			LastReviewedAt: state.LastReviewedAt,
		}
		if word, ok := wordsByID[state.WordID]; ok {
			row.Text = word.Text
			row.DifficultyLevel = word.DifficultyLevel.Value()
		}
		rows = append(rows, row)
	}

	return &LearnerProgress{
		LearnerID:    query.LearnerID,
		WordsStudied: studied,
		WordsDue:     due,
		Progress:     rows,
	}, nil
}

// GetWordStats reports answer statistics for one word.
func (s *Service) GetWordStats(ctx context.Context, query GetWordStatsQuery) (*WordStats, error) {
	word, err := s.wordStore.FindByID(ctx, query.WordID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionStore.FindByWord(ctx, query.WordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load word sessions: %w", err)
	}

	correct, err := s.sessionStore.CountCorrect(ctx, query.WordID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct answers: %w", err)
	}

	stats := &WordStats{
		WordID:          word.ID,
		Text:            word.Text,
		TotalAttempts:   len(sessions),
		CorrectAttempts: correct,
	}
	if stats.TotalAttempts > 0 {
		stats.AccuracyRate = float64(correct) / float64(stats.TotalAttempts)

		var totalResponseTime float64
		for _, session := range sessions {
			totalResponseTime += session.ResponseTimeSeconds
		}
		stats.AverageResponseTime = totalResponseTime / float64(stats.TotalAttempts)
	}
	return stats, nil
}

// GetGlobalStats reports aggregate counts across all learners.
func (s *Service) GetGlobalStats(ctx context.Context, _ GetGlobalStatsQuery) (*GlobalStats, error) {
	words, err := s.wordStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}

	sessions, err := s.sessionStore.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	learners, err := s.sessionStore.CountDistinctLearners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count learners: %w", err)
	}

	distribution := make(map[int]int)
	for _, word := range words {
		distribution[word.DifficultyLevel.Value()]++
	}

	stats := &GlobalStats{
		TotalWords:             len(words),
		TotalSessions:          sessions,
		TotalLearners:          learners,
		DifficultyDistribution: distribution,
	}
	if stats.TotalWords > 0 {
		stats.AvgSessionsPerWord = float64(sessions) / float64(stats.TotalWords)
	}
	return stats, nil
}

// GetWordByID retrieves a single word.
func (s *Service) GetWordByID(ctx context.Context, query GetWordByIDQuery) (*domain.Word, error) {
	return s.wordStore.FindByID(ctx, query.WordID)
}

// GetWordsByDifficulty retrieves words at one difficulty level.
func (s *Service) GetWordsByDifficulty(
	ctx context.Context,
	query GetWordsByDifficultyQuery,
) ([]*domain.Word, error) {
	level, err := domain.NewDifficultyLevel(query.Level)
	if err != nil {
		return nil, err
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", domain.ErrValidation)
	}
	return s.wordStore.FindByDifficulty(ctx, level, query.Limit)
}
