// Package eventbus provides implementations of the EventBus interface.
// This package contains the synchronous event bus implementation.
package eventbus

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// ErrClosed is returned by Close on a bus that is already closed.
var ErrClosed = errors.New("event bus already closed")

// SyncEventBus is a synchronous implementation of the FilteringEventBus interface.
// Events are delivered on the publisher's goroutine, type-specific
// subscribers first, then wildcard and filtered subscribers, each group in
// subscription order.
//
// Thread-safety: This implementation is thread-safe. Handlers run without
// the bus lock held, so a handler may publish or unsubscribe.
type SyncEventBus struct {
	logger *slog.Logger

	mu       sync.RWMutex
	byType   map[domain.EventType][]subscription
	wildcard []subscription
	nextID   uint64
	closed   bool
}

type subscription struct {
	id      domain.SubscriptionID
	filter  ports.EventFilter // nil means every event
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
// A nil logger discards handler panics silently.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	return &SyncEventBus{
		logger: logger,
		byType: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers event to every matching subscriber.
// A panicking handler is logged and does not stop delivery to the others.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	targets := slices.Concat(bus.byType[event.Type()], bus.wildcard)
	bus.mu.RUnlock()

	for _, sub := range targets {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		bus.deliver(sub, event)
	}
}

func (bus *SyncEventBus) deliver(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && bus.logger != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())),
				slog.String("subscription", string(sub.id)))
		}
	}()
	sub.handler(event)
}

// Subscribe registers a handler for one event type.
// It panics on a nil handler or a closed bus.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	sub := bus.newSubscription("sub", nil, handler)
	bus.byType[eventType] = append(bus.byType[eventType], sub)
	return sub.id
}

// SubscribeAll registers a handler that receives every event.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	return bus.SubscribeFiltered(nil, handler)
}

// SubscribeFiltered registers a handler for every event accepted by filter.
func (bus *SyncEventBus) SubscribeFiltered(filter ports.EventFilter, handler domain.EventHandler) domain.SubscriptionID {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	sub := bus.newSubscription("sub-all", filter, handler)
	bus.wildcard = append(bus.wildcard, sub)
	return sub.id
}

// newSubscription must be called with mu held.
func (bus *SyncEventBus) newSubscription(prefix string, filter ports.EventFilter, handler domain.EventHandler) subscription {
	if handler == nil {
		panic("event handler cannot be nil")
	}
	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}
	bus.nextID++
	return subscription{
		id:      domain.SubscriptionID(fmt.Sprintf("%s-%d", prefix, bus.nextID)),
		filter:  filter,
		handler: handler,
	}
}

// Unsubscribe removes a subscription, keeping the order of the rest.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	match := func(s subscription) bool { return s.id == id }
	for eventType, subs := range bus.byType {
		if i := slices.IndexFunc(subs, match); i >= 0 {
			bus.byType[eventType] = slices.Delete(subs, i, i+1)
			return
		}
	}
	bus.wildcard = slices.DeleteFunc(bus.wildcard, match)
}

// HasSubscribers reports whether an event of eventType would reach anyone.
// Filtered subscribers count, since their filter is only known at publish time.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.byType[eventType]) > 0 || len(bus.wildcard) > 0
}

// Close drops all subscriptions. It returns ErrClosed when called twice.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return ErrClosed
	}
	bus.closed = true
	clear(bus.byType)
	bus.wildcard = nil
	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.wildcard)
	for _, subs := range bus.byType {
		count += len(subs)
	}
	return count
}

var _ ports.FilteringEventBus = (*SyncEventBus)(nil)
