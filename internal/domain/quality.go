package domain

import (
	"fmt"
	"strings"
)

// Quality is a learner's self-assessed recall score for one answer,
// on the SM-2 scale of 0 (blackout) to 5 (perfect recall).
type Quality int

// NewQuality validates and returns a Quality score.
// Returns ErrInvalidQuality if the value is outside [0,5].
func NewQuality(value int) (Quality, error) {
	if value < 0 || value > 5 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuality, value)
	}
	return Quality(value), nil
}

// Value returns the raw score.
func (q Quality) Value() int { return int(q) }

// IsCorrect reports whether the answer counts as correct (>= 3).
func (q Quality) IsCorrect() bool { return q >= 3 }

// IsPerfect reports whether the answer was a perfect recall (== 5).
func (q Quality) IsPerfect() bool { return q == 5 }

// IsPoor reports whether the answer counts as a failure (< 3).
func (q Quality) IsPoor() bool { return q < 3 }

// DifficultyLevel classifies a word's difficulty from 1 (easiest)
// to 5 (hardest).
type DifficultyLevel int

// NewDifficultyLevel validates and returns a DifficultyLevel.
// Returns ErrInvalidDifficulty if the value is outside [1,5].
func NewDifficultyLevel(value int) (DifficultyLevel, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, value)
	}
	return DifficultyLevel(value), nil
}

// Value returns the raw level.
func (d DifficultyLevel) Value() int { return int(d) }

// IsBeginner reports whether the level is beginner material (1-2).
func (d DifficultyLevel) IsBeginner() bool { return d <= 2 }

// IsIntermediate reports whether the level is intermediate material (3).
func (d DifficultyLevel) IsIntermediate() bool { return d == 3 }

// IsAdvanced reports whether the level is advanced material (4-5).
func (d DifficultyLevel) IsAdvanced() bool { return d >= 4 }

// FrequencyRank is a word's rank in a corpus frequency list; rank 1 is
// the most frequent word.
type FrequencyRank int

// NewFrequencyRank validates and returns a FrequencyRank.
// Returns ErrInvalidFrequencyRank if the value is below 1.
func NewFrequencyRank(value int) (FrequencyRank, error) {
	if value < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidFrequencyRank, value)
	}
	return FrequencyRank(value), nil
}

// Value returns the raw rank.
func (f FrequencyRank) Value() int { return int(f) }

// IsVeryCommon reports whether the word is in the top 100.
func (f FrequencyRank) IsVeryCommon() bool { return f <= 100 }

// IsCommon reports whether the word is in the top 1000.
func (f FrequencyRank) IsCommon() bool { return f <= 1000 }

// IsUncommon reports whether the word falls outside the top 1000.
func (f FrequencyRank) IsUncommon() bool { return f > 1000 }

// ValidateLearnerID checks that a learner identifier is non-empty and at
// least three characters long after trimming whitespace.
func ValidateLearnerID(learnerID string) error {
	if len(strings.TrimSpace(learnerID)) < 3 {
		return fmt.Errorf("%w: got %q", ErrInvalidLearnerID, learnerID)
	}
	return nil
}
