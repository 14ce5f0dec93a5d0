package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/platform/logger"
	"github.com/phrazzld/vocab-api/internal/store"
)

// blockIDTimeFormat gives block identifiers second-level precision.
const blockIDTimeFormat = "20060102_150405"

// Assembler builds study blocks: due reviews first (earliest due first),
// then unstudied words to fill the shortfall, deduplicated by word ID with
// the due set taking priority, truncated to the requested limit.
type Assembler struct {
	wordStore      store.WordStore
	retentionStore store.RetentionStore
	logger         *slog.Logger
	now            func() time.Time
}

// NewAssembler creates a study-block assembler.
func NewAssembler(
	wordStore store.WordStore,
	retentionStore store.RetentionStore,
	log *slog.Logger,
) *Assembler {
	// ALLOW-PANIC: constructor enforces required dependencies
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if retentionStore == nil {
		panic("retentionStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Assembler{
		wordStore:      wordStore,
		retentionStore: retentionStore,
		logger:         log.With(slog.String("component", "block_assembler")),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Assemble produces the next study block for a learner. Returns
// ErrNoWordsAvailable when the learner has neither due reviews nor
// unstudied words, or when limit is 0.
func (a *Assembler) Assemble(ctx context.Context, learnerID string, limit int) (*StudyBlock, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if err := domain.ValidateLearnerID(learnerID); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", domain.ErrValidation)
	}
	if limit == 0 {
		return nil, fmt.Errorf("%w: learner %s", ErrNoWordsAvailable, learnerID)
	}

	due, err := a.retentionStore.FindDueWords(ctx, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due words: %w", err)
	}

	words := make([]*domain.Word, 0, limit)
	seen := make(map[int64]bool, limit)
	for _, w := range due {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		words = append(words, w)
	}

	if shortfall := limit - len(words); shortfall > 0 {
		unstudied, err := a.wordStore.FindUnstudied(ctx, learnerID, shortfall)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch unstudied words: %w", err)
		}
		for _, w := range unstudied {
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			words = append(words, w)
		}
	}

	if len(words) > limit {
		words = words[:limit]
	}
	if len(words) == 0 {
		log.Debug("no words available for study block",
			slog.String("learner_id", learnerID))
		return nil, fmt.Errorf("%w: learner %s", ErrNoWordsAvailable, learnerID)
	}

	distribution := make(map[int]int)
	for _, w := range words {
		distribution[w.DifficultyLevel.Value()]++
	}

	createdAt := a.now()
	block := &StudyBlock{
		BlockID:                fmt.Sprintf("%s_%s", learnerID, createdAt.Format(blockIDTimeFormat)),
		Words:                  words,
		CreatedAt:              createdAt,
		DifficultyDistribution: distribution,
		TotalWords:             len(words),
	}

	log.Debug("assembled study block",
		slog.String("learner_id", learnerID),
		slog.String("block_id", block.BlockID),
		slog.Int("due_count", len(due)),
		slog.Int("total_words", block.TotalWords))

	return block, nil
}
