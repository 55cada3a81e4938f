package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"yenbot/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketChange   EventType = "ticket_change"
	EventTypeContractClosed EventType = "contract_closed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketChangeEvent represents a committed change to a user's ticket count
// (purchase or administrative adjustment). The ticket board refreshes on it.
type TicketChangeEvent struct {
	GuildID  int64
	UserID   int64
	Label    string
	NewCount int64
}

func (e TicketChangeEvent) Type() EventType {
	return EventTypeTicketChange
}

// ContractClosedEvent represents a contract reaching the closed state with a
// mutually confirmed result. The result board appends a line on it.
type ContractClosedEvent struct {
	GuildID     int64
	ContractID  int64
	SubmitterID int64
	OpponentID  int64
	Result      models.ContractResult
	Content     string
}

func (e ContractClosedEvent) Type() EventType {
	return EventTypeContractClosed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and flushes
// them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events outlive the transaction context that produced them
	eventCtx := context.Background()

	for _, ev := range b.pending {
		log.WithFields(log.Fields{
			"eventType": ev.Type(),
		}).Debug("Emitting committed event")
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
