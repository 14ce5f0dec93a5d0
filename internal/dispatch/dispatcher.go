// Package dispatch provides the command/query dispatcher: a routing table
// mapping a request's concrete type to the single handler responsible for
// it. It decouples transport from handler logic; it is not a
// publish/subscribe bus. Dispatch is synchronous pass-through: handler
// errors propagate unmodified and the dispatcher adds no retry, timeout,
// or transformation semantics.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrUnregisteredHandler is returned when no handler is registered for a
// request's concrete type. Registrations happen once at startup, so hitting
// this at steady state is a wiring defect, not a user-facing condition.
var ErrUnregisteredHandler = errors.New("no handler registered for request type")

// CommandHandler processes one command type and returns its result DTO.
type CommandHandler interface {
	HandleCommand(ctx context.Context, cmd any) (any, error)
}

// CommandHandlerFunc adapts a plain function to the CommandHandler interface.
type CommandHandlerFunc func(ctx context.Context, cmd any) (any, error)

// HandleCommand implements CommandHandler.
func (f CommandHandlerFunc) HandleCommand(ctx context.Context, cmd any) (any, error) {
	return f(ctx, cmd)
}

// QueryHandler processes one query type and returns its result DTO.
type QueryHandler interface {
	HandleQuery(ctx context.Context, query any) (any, error)
}

// QueryHandlerFunc adapts a plain function to the QueryHandler interface.
type QueryHandlerFunc func(ctx context.Context, query any) (any, error)

// HandleQuery implements QueryHandler.
func (f QueryHandlerFunc) HandleQuery(ctx context.Context, query any) (any, error) {
	return f(ctx, query)
}

// Dispatcher routes commands and queries to their registered handlers by
// concrete request type. Exactly one handler may be registered per type;
// re-registering a type silently replaces the previous handler.
type Dispatcher struct {
	mu              sync.RWMutex
	commandHandlers map[reflect.Type]CommandHandler
	queryHandlers   map[reflect.Type]QueryHandler
}

// NewDispatcher creates an empty dispatcher. Handlers are registered once
// during application wiring.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		commandHandlers: make(map[reflect.Type]CommandHandler),
		queryHandlers:   make(map[reflect.Type]QueryHandler),
	}
}

// RegisterCommandHandler registers the handler for the concrete type of cmd.
// The cmd argument is only used as a type prototype; its field values are
// ignored. Last registration wins.
func (d *Dispatcher) RegisterCommandHandler(cmd any, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commandHandlers[reflect.TypeOf(cmd)] = handler
}

// RegisterQueryHandler registers the handler for the concrete type of query.
// Last registration wins.
func (d *Dispatcher) RegisterQueryHandler(query any, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queryHandlers[reflect.TypeOf(query)] = handler
}

// SubmitCommand resolves the handler registered for cmd's concrete type and
// invokes it. Returns ErrUnregisteredHandler if no handler is registered.
func (d *Dispatcher) SubmitCommand(ctx context.Context, cmd any) (any, error) {
	d.mu.RLock()
	handler, ok := d.commandHandlers[reflect.TypeOf(cmd)]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregisteredHandler, cmd)
	}
	return handler.HandleCommand(ctx, cmd)
}

// SubmitQuery resolves the handler registered for query's concrete type and
// invokes it. Returns ErrUnregisteredHandler if no handler is registered.
func (d *Dispatcher) SubmitQuery(ctx context.Context, query any) (any, error) {
	d.mu.RLock()
	handler, ok := d.queryHandlers[reflect.TypeOf(query)]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregisteredHandler, query)
	}
	return handler.HandleQuery(ctx, query)
}
