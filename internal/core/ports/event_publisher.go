package ports

import (
	"context"

	"couriertrack/internal/core/domain/events"
)

// EventHandler receives a single domain event. Handlers run synchronously on
// the publishing goroutine; a handler that panics is isolated and does not
// stop delivery to the remaining handlers.
type EventHandler func(ctx context.Context, event events.Event)

// Subscription is a handle returned by Subscribe. Unsubscribe removes the
// handler; it is safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// EventPublisher delivers domain events to subscribers after state changes
// commit.
//
// Delivery contract:
//   - Events from one publisher are delivered in publish order
//   - Each event reaches every matching handler subscribed at publish time
//   - Handlers added mid-publish see only subsequent events
type EventPublisher interface {
	// Publish delivers the events to the subscribers of each event's name, in order.
	Publish(ctx context.Context, events ...events.Event)

	// Subscribe registers a handler for events with the given name
	// (events.ParcelStatusChangedName, events.ParcelAssignedName or
	// events.AgentAvailabilityChangedName) and returns its subscription handle.
	Subscribe(eventName string, handler EventHandler) Subscription
}
