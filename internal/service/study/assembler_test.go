package study

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocab-api/internal/domain"
)

func testWord(id int64, level int) *domain.Word {
	return &domain.Word{
		ID:              id,
		Text:            fmt.Sprintf("word-%d", id),
		FrequencyRank:   domain.FrequencyRank(id),
		DifficultyLevel: domain.DifficultyLevel(level),
	}
}

func newTestAssembler(words *fakeWordStore, retention *fakeRetentionStore) *Assembler {
	a := NewAssembler(words, retention, nil)
	a.now = func() time.Time {
		return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	}
	return a
}

func TestAssembleDueWordsPrecedeNewWords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	retention.due = []*domain.Word{testWord(101, 3), testWord(102, 4)}
	for i := int64(1); i <= 25; i++ {
		words.unstudied = append(words.unstudied, testWord(i, 2))
	}

	block, err := newTestAssembler(words, retention).Assemble(ctx, "learner-1", 20)
	require.NoError(t, err)

	assert.Equal(t, 20, block.TotalWords)
	require.Len(t, block.Words, 20)
	assert.Equal(t, int64(101), block.Words[0].ID)
	assert.Equal(t, int64(102), block.Words[1].ID)

	seen := make(map[int64]bool)
	for _, w := range block.Words {
		assert.False(t, seen[w.ID], "word %d appears twice", w.ID)
		seen[w.ID] = true
	}
}

func TestAssembleDedupesByWordID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	retention.due = []*domain.Word{testWord(1, 3)}
	words.unstudied = []*domain.Word{testWord(1, 3), testWord(2, 2)}

	block, err := newTestAssembler(words, retention).Assemble(ctx, "learner-1", 10)
	require.NoError(t, err)

	require.Len(t, block.Words, 2)
	assert.Equal(t, int64(1), block.Words[0].ID)
	assert.Equal(t, int64(2), block.Words[1].ID)
}

func TestAssembleTruncatesToLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	for i := int64(1); i <= 5; i++ {
		retention.due = append(retention.due, testWord(i, 1))
	}

	block, err := newTestAssembler(words, retention).Assemble(ctx, "learner-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, block.TotalWords)
}

func TestAssembleNoWordsAvailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	block, err := newTestAssembler(newFakeWordStore(), newFakeRetentionStore()).
		Assemble(ctx, "learner-1", 20)
	assert.Nil(t, block)
	assert.ErrorIs(t, err, ErrNoWordsAvailable)
}

func TestAssembleLimitZeroAlwaysFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	retention.due = []*domain.Word{testWord(1, 3)}

	_, err := newTestAssembler(words, retention).Assemble(ctx, "learner-1", 0)
	assert.ErrorIs(t, err, ErrNoWordsAvailable)
}

func TestAssembleNegativeLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := newTestAssembler(newFakeWordStore(), newFakeRetentionStore()).
		Assemble(ctx, "learner-1", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssembleInvalidLearnerID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := newTestAssembler(newFakeWordStore(), newFakeRetentionStore()).
		Assemble(ctx, "ab", 20)
	assert.ErrorIs(t, err, domain.ErrInvalidLearnerID)
}

func TestAssembleBlockMetadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	retention.due = []*domain.Word{testWord(1, 2), testWord(2, 2), testWord(3, 5)}

	block, err := newTestAssembler(words, retention).Assemble(ctx, "learner-1", 20)
	require.NoError(t, err)

	assert.Equal(t, "learner-1_20240102_150405", block.BlockID)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), block.CreatedAt)
	assert.Equal(t, map[int]int{2: 2, 5: 1}, block.DifficultyDistribution)
}

func TestAssembleIsDeterministicWithoutInterveningAnswers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := newFakeWordStore()
	retention := newFakeRetentionStore()
	retention.due = []*domain.Word{testWord(7, 3), testWord(9, 3)}
	words.unstudied = []*domain.Word{testWord(1, 1), testWord(2, 1)}
	assembler := newTestAssembler(words, retention)

	first, err := assembler.Assemble(ctx, "learner-1", 20)
	require.NoError(t, err)
	second, err := assembler.Assemble(ctx, "learner-1", 20)
	require.NoError(t, err)

	assert.Equal(t, first.Words, second.Words)
}
