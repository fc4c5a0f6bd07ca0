package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/logger"
)

func newBus() *SyncEventBus {
	return NewSyncEventBus(logger.NewTestLogger())
}

func songEvent() domain.Event {
	return domain.NewSongAddedEvent(domain.ImplCircular, domain.Song{ID: 1, Title: "A", Artist: "X"})
}

func TestNewSyncEventBus(t *testing.T) {
	bus := newBus()

	if bus.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got %d", bus.SubscriberCount())
	}
	if bus.closed {
		t.Error("New event bus should not be closed")
	}
}

func TestPublishSubscribe(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var received domain.Event
	subID := bus.Subscribe(domain.EventSongAdded, func(event domain.Event) {
		received = event
	})
	if subID == "" {
		t.Fatal("Subscribe returned empty subscription ID")
	}

	bus.Publish(songEvent())

	if received == nil {
		t.Fatal("Handler did not receive event")
	}
	e, ok := received.(domain.SongAddedEvent)
	if !ok {
		t.Fatalf("Expected SongAddedEvent, got %T", received)
	}
	if e.Song.ID != 1 || e.Impl != domain.ImplCircular {
		t.Errorf("Unexpected event payload: %+v", e)
	}
}

func TestDeliveryOrder(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventSongAdded, func(domain.Event) { order = append(order, "first") })
	bus.Subscribe(domain.EventSongAdded, func(domain.Event) { order = append(order, "second") })

	bus.Publish(songEvent())

	want := []string{"first", "second", "all"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var callCount int32
	subID := bus.Subscribe(domain.EventSongAdded, func(domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(songEvent())
	bus.Unsubscribe(subID)
	bus.Publish(songEvent())

	if got := atomic.LoadInt32(&callCount); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}

	// Unknown ids are ignored.
	bus.Unsubscribe("invalid-id")
	bus.Unsubscribe("")
}

func TestUnsubscribeFromHandler(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var callCount int32
	var subID domain.SubscriptionID
	subID = bus.SubscribeAll(func(domain.Event) {
		atomic.AddInt32(&callCount, 1)
		bus.Unsubscribe(subID)
	})

	bus.Publish(songEvent())
	bus.Publish(songEvent())

	if got := atomic.LoadInt32(&callCount); got != 1 {
		t.Errorf("Expected handler to run once, got %d", got)
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var received []domain.EventType
	bus.SubscribeAll(func(event domain.Event) {
		received = append(received, event.Type())
	})

	bus.Publish(songEvent())
	bus.Publish(domain.NewSongRemovedEvent(domain.ImplList, 2))
	bus.Publish(domain.NewImplementationSwitchedEvent(domain.ImplCircular, domain.ImplList))

	if len(received) != 3 {
		t.Errorf("Expected 3 events, got %d", len(received))
	}
}

func TestSubscribeFiltered(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var received []domain.EventType
	bus.SubscribeFiltered(func(e domain.Event) bool {
		return e.Type() != domain.EventScanProgress
	}, func(event domain.Event) {
		received = append(received, event.Type())
	})

	bus.Publish(domain.NewScanStartedEvent("/music"))
	bus.Publish(domain.NewScanProgressEvent(domain.ScanProgress{FilesScanned: 1}))
	bus.Publish(domain.NewScanCompletedEvent(nil))

	if len(received) != 2 {
		t.Fatalf("Expected 2 events, got %v", received)
	}
	if received[0] != domain.EventScanStarted || received[1] != domain.EventScanCompleted {
		t.Errorf("Unexpected events: %v", received)
	}
}

func TestHasSubscribers(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	if bus.HasSubscribers(domain.EventSongAdded) {
		t.Error("Expected no subscribers initially")
	}

	bus.Subscribe(domain.EventSongAdded, func(domain.Event) {})
	if !bus.HasSubscribers(domain.EventSongAdded) {
		t.Error("Expected subscribers after subscription")
	}
	if bus.HasSubscribers(domain.EventSongRemoved) {
		t.Error("Expected no subscribers for different event type")
	}

	bus.SubscribeAll(func(domain.Event) {})
	if !bus.HasSubscribers(domain.EventSongRemoved) {
		t.Error("Expected wildcard subscriber to count for every type")
	}
}

func TestHandlerPanic(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var callCount int32
	bus.Subscribe(domain.EventSongAdded, func(domain.Event) { panic("test panic") })
	bus.Subscribe(domain.EventSongAdded, func(domain.Event) { atomic.AddInt32(&callCount, 1) })

	bus.Publish(songEvent())

	if got := atomic.LoadInt32(&callCount); got != 1 {
		t.Errorf("Expected normal handler to be called despite panic, got %d calls", got)
	}
}

func TestClose(t *testing.T) {
	bus := newBus()
	bus.Subscribe(domain.EventSongAdded, func(domain.Event) {})
	bus.SubscribeAll(func(domain.Event) {})

	if err := bus.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers after close, got %d", bus.SubscriberCount())
	}

	// Publishing after close is a no-op.
	bus.Publish(songEvent())

	if err := bus.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestSubscribeAfterClosePanics(t *testing.T) {
	bus := newBus()
	_ = bus.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when subscribing to a closed bus")
		}
	}()
	bus.SubscribeAll(func(domain.Event) {})
}

func TestNilEventAndHandler(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var callCount int32
	bus.SubscribeAll(func(domain.Event) { atomic.AddInt32(&callCount, 1) })
	bus.Publish(nil)
	if got := atomic.LoadInt32(&callCount); got != 0 {
		t.Errorf("Handler should not be called for nil event, got %d calls", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when subscribing with nil handler")
		}
	}()
	bus.Subscribe(domain.EventSongAdded, nil)
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	bus := newBus()
	defer bus.Close()

	var eventCount int32
	handler := func(domain.Event) { atomic.AddInt32(&eventCount, 1) }
	bus.Subscribe(domain.EventSongAdded, handler)

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range perWorker {
				bus.Publish(songEvent())
			}
		}()
		go func() {
			defer wg.Done()
			for range 10 {
				id := bus.Subscribe(domain.EventSongRemoved, handler)
				bus.Unsubscribe(id)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&eventCount); got != workers*perWorker {
		t.Errorf("Expected %d events, got %d", workers*perWorker, got)
	}
	if bus.SubscriberCount() != 1 {
		t.Errorf("Expected 1 subscriber left, got %d", bus.SubscriberCount())
	}
}
