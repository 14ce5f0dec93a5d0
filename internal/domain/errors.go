package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidQuality is returned when a recall quality score is outside [0,5].
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrInvalidResponseTime is returned when a response time is negative.
	ErrInvalidResponseTime = errors.New("response time cannot be negative")

	// ErrInvalidDifficulty is returned when a difficulty level is outside [1,5].
	ErrInvalidDifficulty = errors.New("difficulty level must be between 1 and 5")

	// ErrInvalidFrequencyRank is returned when a frequency rank is below 1.
	ErrInvalidFrequencyRank = errors.New("frequency rank must be at least 1")

	// ErrInvalidLearnerID is returned when a learner ID is empty or shorter
	// than three characters after trimming.
	ErrInvalidLearnerID = errors.New("learner ID must have at least 3 characters")

	// ErrInvalidWordID is returned when a word ID is zero or negative where a
	// persisted word is required.
	ErrInvalidWordID = errors.New("word ID must be positive")

	// ErrEmptyWordText is returned when a word's text is empty after trimming.
	ErrEmptyWordText = errors.New("word text cannot be empty")

	// ErrInvalidEaseFactor is returned when an ease factor drops below the
	// SM-2 floor of 1.3.
	ErrInvalidEaseFactor = errors.New("ease factor cannot be less than 1.3")

	// ErrInvalidInterval is returned when a review interval is below one day.
	ErrInvalidInterval = errors.New("interval must be at least 1 day")

	// ErrInvalidRepetitions is returned when a repetition count is negative.
	ErrInvalidRepetitions = errors.New("repetitions cannot be negative")
)
