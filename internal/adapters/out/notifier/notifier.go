// Package notifier delivers domain events to in-process subscribers.
//
// Delivery is synchronous and ordered: Publish invokes every handler
// subscribed to the event's name on the calling goroutine before returning,
// in subscription order. A handler that
// panics is recovered and logged so the remaining handlers still receive the
// event. Command handlers publish only after their transaction commits, so
// subscribers observe facts, never tentative state.
package notifier

import (
	"context"
	"log/slog"
	"sync"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/ports"
)

// Notifier is a synchronous in-process event bus implementing
// ports.EventPublisher. Subscriptions are scoped to one event name; an event
// is delivered only to the handlers subscribed under its name. Safe for
// concurrent use.
//
// Example:
//
//	n := notifier.NewNotifier(logger)
//	sub := n.Subscribe(events.ParcelAssignedName, func(ctx context.Context, e events.Event) {
//	    log.Printf("event: %s", e.Name())
//	})
//	defer sub.Unsubscribe()
//
//	n.Publish(ctx, event)
type Notifier struct {
	mu       sync.RWMutex
	handlers []*subscription
	nextID   uint64
	logger   *slog.Logger
}

// NewNotifier creates a notifier that logs handler panics through logger.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger.With("component", "notifier"),
	}
}

// Publish delivers each event to the subscribers of its name, in order.
// Handlers subscribed while a publish is in flight see only later events.
func (n *Notifier) Publish(ctx context.Context, evts ...events.Event) {
	n.mu.RLock()
	snapshot := make([]*subscription, len(n.handlers))
	copy(snapshot, n.handlers)
	n.mu.RUnlock()

	for _, event := range evts {
		for _, sub := range snapshot {
			if sub.eventName != event.Name() {
				continue
			}
			n.deliver(ctx, sub, event)
		}
	}
}

// deliver invokes a single handler, containing any panic to this event.
func (n *Notifier) deliver(ctx context.Context, sub *subscription, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("event handler panicked",
				"event", event.Name(),
				"panic", r,
			)
		}
	}()

	sub.handler(ctx, event)
}

// Subscribe registers a handler for events with the given name. The returned
// subscription removes the handler when Unsubscribed; calling Unsubscribe
// twice is a no-op.
func (n *Notifier) Subscribe(eventName string, handler ports.EventHandler) ports.Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	sub := &subscription{
		id:        n.nextID,
		eventName: eventName,
		handler:   handler,
		notifier:  n,
	}
	n.handlers = append(n.handlers, sub)
	return sub
}

// remove drops the subscription with the given id, keeping the remaining
// handlers in subscription order.
func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, sub := range n.handlers {
		if sub.id == id {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			return
		}
	}
}

type subscription struct {
	id        uint64
	eventName string
	handler   ports.EventHandler
	notifier  *Notifier
	once      sync.Once
}

// Unsubscribe removes the handler from the notifier. Safe to call more than once.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}
