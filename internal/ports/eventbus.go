// Package ports define the interfaces the services depend on.
// Adapters in internal/adapter implement them.
package ports

import (
	"github.com/tejashwikalptaru/playring/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Services publish a domain event after every playlist mutation; the
// websocket stream and the application logger subscribe to them. Publishers
// never know who is listening.
//
// Thread-safety: Implementations must be thread-safe as events may be published and
// subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	bus.Publish(domain.NewCurrentChangedEvent(domain.ImplCircular, song))
//
//	subID := bus.Subscribe(domain.EventCurrentChanged, func(event domain.Event) {
//	    e := event.(domain.CurrentChangedEvent)
//	    fmt.Println("now playing", e.Current)
//	})
//	defer bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type and to all
	// wildcard subscribers. Handlers must return quickly.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Each call returns a new SubscriptionID, even for the same handler.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown ids are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// HasSubscribers reports whether anyone would receive an event of this type.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions. Publishing after Close is a no-op.
	Close() error
}

// EventFilter reports whether an event should be delivered to a subscriber.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered wildcard subscriptions.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler for every event that passes filter.
	//
	// Example: everything except per-file scan progress
	//	bus.SubscribeFiltered(func(e domain.Event) bool {
	//	    return e.Type() != domain.EventScanProgress
	//	}, broadcast)
	SubscribeFiltered(filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
