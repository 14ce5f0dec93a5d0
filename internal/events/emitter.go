// Package events provides in-process fan-out of domain events emitted by
// the retention state machine. Handlers subscribe to be notified after a
// command commits; emission is best-effort and never blocks or fails the
// command that produced the event.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/vocab-api/internal/domain"
)

// Handler defines an interface for components that can handle domain events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event domain.Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event domain.Event) error

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit domain events.
// This allows handlers to publish events without direct knowledge of
// subscribers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	// Returns the first handler error encountered, after delivering the
	// event to every handler.
	Emit(ctx context.Context, event domain.Event) error
}

// InMemoryEmitter is a simple implementation of the Emitter interface that
// stores registered handlers in memory and dispatches events to them.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		handlers: make([]Handler, 0),
		logger:   logger.With(slog.String("component", "event_emitter")),
	}
}

// Ensure InMemoryEmitter implements the Emitter interface
var _ Emitter = (*InMemoryEmitter)(nil)

// RegisterHandler adds a new event handler to receive events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
}

// Emit publishes the given event to all registered handlers.
// If a handler returns an error, the event is still delivered to the
// remaining handlers and the first error is returned.
func (e *InMemoryEmitter) Emit(ctx context.Context, event domain.Event) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.EventID(),
		"event_name", event.EventName(),
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.EventID(),
				"event_name", event.EventName())
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
