package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/service/study"
	"github.com/phrazzld/vocab-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so clients
// never see internal error types.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors: caller input out of domain range
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrInvalidResponseTime),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidFrequencyRank),
		errors.Is(err, domain.ErrInvalidLearnerID),
		errors.Is(err, domain.ErrInvalidWordID),
		errors.Is(err, domain.ErrEmptyWordText),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrWordNotFound),
		errors.Is(err, store.ErrRetentionStateNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Content shortage: nothing left for this learner to study
	case errors.Is(err, study.ErrNoWordsAvailable):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrWordExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error (including routing defects)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error. Raw error
// text stays in the server logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, domain.ErrInvalidResponseTime):
		return "Response time cannot be negative"

	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Difficulty level must be between 1 and 5"

	case errors.Is(err, domain.ErrInvalidFrequencyRank):
		return "Frequency rank must be at least 1"

	case errors.Is(err, domain.ErrInvalidLearnerID):
		return "Learner ID must have at least 3 characters"

	case errors.Is(err, domain.ErrInvalidWordID):
		return "Word ID must be positive"

	case errors.Is(err, domain.ErrEmptyWordText):
		return "Word text cannot be empty"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrRetentionStateNotFound):
		return "No retention state for this word"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, study.ErrNoWordsAvailable):
		return "No words available for study"

	case errors.Is(err, store.ErrWordExists):
		return "Word already exists"

	default:
		return "An unexpected error occurred"
	}
}
