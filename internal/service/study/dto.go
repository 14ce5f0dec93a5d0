package study

import (
	"time"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// SubmitAnswerResult summarizes the retention state after one answer.
type SubmitAnswerResult struct {
	WordID       int64      `json:"word_id"`
	Quality      int        `json:"quality"`
	Correct      bool       `json:"correct"`
	Repetitions  int        `json:"repetitions"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
	NextReviewAt *time.Time `json:"next_review"`
}

// StudyBlock is a bounded, ordered set of words for one study session.
// Due reviews precede new material; DifficultyDistribution is a histogram
// of difficulty level over the included words.
type StudyBlock struct {
	BlockID                string         `json:"block_id"`
	Words                  []*domain.Word `json:"words"`
	CreatedAt              time.Time      `json:"created_at"`
	DifficultyDistribution map[int]int    `json:"difficulty_distribution"`
	TotalWords             int            `json:"total_words"`
}

// ProgressRow is one word's scheduling state for a learner, joined with the
// word's text and difficulty so clients need no second lookup.
type ProgressRow struct {
	WordID          int64      `json:"word_id"`
	Text            string     `json:"word"`
	DifficultyLevel int        `json:"difficulty_level"`
	Repetitions     int        `json:"repetitions"`
	EaseFactor      float64    `json:"ease_factor"`
	IntervalDays    int        `json:"interval_days"`
	NextReviewAt    *time.Time `json:"next_review"`
	LastReviewedAt  *time.Time `json:"last_review"`
}

// LearnerProgress summarizes a learner's scheduling state.
type LearnerProgress struct {
	LearnerID    string         `json:"learner_id"`
	WordsStudied int            `json:"words_studied"`
	WordsDue     int            `json:"words_due"`
	Progress     []*ProgressRow `json:"progress"`
}

// WordStats reports answer statistics for one word across all learners.
type WordStats struct {
	WordID              int64   `json:"word_id"`
	Text                string  `json:"word"`
	TotalAttempts       int     `json:"total_attempts"`
	CorrectAttempts     int     `json:"correct_attempts"`
	AccuracyRate        float64 `json:"accuracy_rate"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// GlobalStats reports aggregate counts across the whole system.
type GlobalStats struct {
	TotalWords             int         `json:"total_words"`
	TotalSessions          int         `json:"total_sessions"`
	TotalLearners          int         `json:"total_learners"`
	DifficultyDistribution map[int]int `json:"difficulty_distribution"`
	AvgSessionsPerWord     float64     `json:"avg_sessions_per_word"`
}
