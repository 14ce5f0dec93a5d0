package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// Common errors
var (
	ErrNilState = errors.New("retention state cannot be nil")
)

// Service defines the interface for retention scheduling operations.
// Handlers depend on this interface so tests can substitute a fake.
type Service interface {
	// Apply runs one SM-2 transition for an answered review and returns the
	// new retention state together with the domain events it produced.
	// The input state is not modified.
	Apply(
		state *domain.RetentionState,
		quality domain.Quality,
		now time.Time,
	) (*domain.RetentionState, []domain.Event, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewService creates the standard SM-2 scheduling service.
func NewService() Service {
	return &defaultService{}
}

// Apply implements the Service interface.
func (s *defaultService) Apply(
	state *domain.RetentionState,
	quality domain.Quality,
	now time.Time,
) (*domain.RetentionState, []domain.Event, error) {
	if state == nil {
		return nil, nil, ErrNilState
	}
	if quality < 0 || quality > 5 {
		return nil, nil, domain.ErrInvalidQuality
	}

	next, events := apply(state, quality, now)
	return next, events, nil
}
