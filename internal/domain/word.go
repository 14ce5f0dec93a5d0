package domain

import (
	"fmt"
	"strings"
)

// Word is a vocabulary unit with frequency and difficulty metadata.
// Words are created by content ingestion and are read-only to the
// scheduler apart from administrative updates. ID is zero until the
// word has been persisted.
type Word struct {
	ID              int64           `json:"id"`
	Text            string          `json:"word"`
	FrequencyRank   FrequencyRank   `json:"frequency_rank"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
}

// NewWord creates a word from raw input, validating every field.
// The text is trimmed before validation.
func NewWord(text string, frequencyRank, difficultyLevel int) (*Word, error) {
	rank, err := NewFrequencyRank(frequencyRank)
	if err != nil {
		return nil, err
	}

	level, err := NewDifficultyLevel(difficultyLevel)
	if err != nil {
		return nil, err
	}

	word := &Word{
		Text:            strings.TrimSpace(text),
		FrequencyRank:   rank,
		DifficultyLevel: level,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Text) == "" {
		return ErrEmptyWordText
	}
	if w.FrequencyRank < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrequencyRank, w.FrequencyRank)
	}
	if w.DifficultyLevel < 1 || w.DifficultyLevel > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidDifficulty, w.DifficultyLevel)
	}
	return nil
}

// IsDifficult reports whether the word sits in the upper difficulty band (> 3).
func (w *Word) IsDifficult() bool {
	return w.DifficultyLevel.Value() > 3
}

// IsCommon reports whether the word is in the top 1000 by frequency.
func (w *Word) IsCommon() bool {
	return w.FrequencyRank.IsCommon()
}
