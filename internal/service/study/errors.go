package study

import "errors"

// Service-level errors surfaced to the transport layer.
var (
	// ErrNoWordsAvailable indicates the assembler produced an empty block:
	// the learner has no due reviews and no unstudied words left. This is a
	// genuine content shortage, reported rather than retried.
	ErrNoWordsAvailable = errors.New("no words available for study")

	// ErrInvalidCommand indicates a handler received a request of the wrong
	// concrete type. Registrations bind one handler per type, so this is a
	// wiring defect.
	ErrInvalidCommand = errors.New("invalid command type for handler")
)
