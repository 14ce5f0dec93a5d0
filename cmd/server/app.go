package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocab-api/internal/config"
	"github.com/phrazzld/vocab-api/internal/dispatch"
	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/domain/srs"
	"github.com/phrazzld/vocab-api/internal/events"
	"github.com/phrazzld/vocab-api/internal/platform/postgres"
	"github.com/phrazzld/vocab-api/internal/service/study"
)

// application holds the wired dependencies for the running server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	dispatcher *dispatch.Dispatcher
}

// newApplication connects the database, applies migrations, and wires the
// stores, services, and dispatcher. Dependencies are constructed once here
// and passed down explicitly.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := connectDatabase(context.Background(), cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	wordStore := postgres.NewWordStore(db, log)
	retentionStore := postgres.NewRetentionStore(db, log)
	sessionStore := postgres.NewSessionStore(db, log)

	emitter := events.NewInMemoryEmitter(log)
	emitter.RegisterHandler(newMilestoneLogger(log))

	studyService := study.NewService(
		db,
		wordStore,
		retentionStore,
		sessionStore,
		srs.NewService(),
		emitter,
		log,
	)

	dispatcher := dispatch.NewDispatcher()
	studyService.Register(dispatcher)

	return &application{
		config:     cfg,
		logger:     log,
		db:         db,
		dispatcher: dispatcher,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

// milestoneLogger logs word-learned events so learner milestones show up in
// the structured logs.
type milestoneLogger struct {
	logger *slog.Logger
}

func newMilestoneLogger(log *slog.Logger) *milestoneLogger {
	return &milestoneLogger{logger: log.With(slog.String("component", "milestone_logger"))}
}

func (h *milestoneLogger) HandleEvent(_ context.Context, event domain.Event) error {
	learned, ok := event.(*domain.WordLearned)
	if !ok {
		return nil
	}
	h.logger.Info("word learned",
		slog.String("learner_id", learned.LearnerID),
		slog.Int64("word_id", learned.WordID),
		slog.Time("occurred_at", learned.OccurredAt()))
	return nil
}
