// Package domain defines events for the event-driven architecture.
// Services publish these on the bus; the websocket stream and logging consume them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playlist content events
	EventSongAdded    EventType = "song.added"
	EventSongRemoved  EventType = "song.removed"
	EventSongEnriched EventType = "song.enriched"

	// Navigation events
	EventCurrentChanged EventType = "current.changed"
	EventUpNextChanged  EventType = "upnext.changed"

	// Engine selection
	EventImplementationSwitched EventType = "impl.switched"

	// Session and favorites
	EventSessionChanged   EventType = "session.changed"
	EventFavoritesChanged EventType = "favorites.changed"

	// Library scanning events
	EventScanStarted   EventType = "scan.started"
	EventScanProgress  EventType = "scan.progress"
	EventScanCompleted EventType = "scan.completed"
	EventScanCancelled EventType = "scan.cancelled"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SongAddedEvent is published after a song is appended to a playlist.
type SongAddedEvent struct {
	baseEvent
	Impl Implementation `json:"impl"`
	Song Song           `json:"song"`
}

// Type returns the event type.
func (e SongAddedEvent) Type() EventType { return EventSongAdded }

// NewSongAddedEvent creates a new SongAddedEvent.
func NewSongAddedEvent(impl Implementation, song Song) SongAddedEvent {
	return SongAddedEvent{baseEvent: newBaseEvent(), Impl: impl, Song: song}
}

// SongRemovedEvent is published after a song leaves a playlist.
type SongRemovedEvent struct {
	baseEvent
	Impl Implementation `json:"impl"`
	ID   SongID         `json:"id"`
}

// Type returns the event type.
func (e SongRemovedEvent) Type() EventType { return EventSongRemoved }

// NewSongRemovedEvent creates a new SongRemovedEvent.
func NewSongRemovedEvent(impl Implementation, id SongID) SongRemovedEvent {
	return SongRemovedEvent{baseEvent: newBaseEvent(), Impl: impl, ID: id}
}

// SongEnrichedEvent is published when a preview URL has been filled in.
type SongEnrichedEvent struct {
	baseEvent
	Impl Implementation `json:"impl"`
	Song Song           `json:"song"`
}

// Type returns the event type.
func (e SongEnrichedEvent) Type() EventType { return EventSongEnriched }

// NewSongEnrichedEvent creates a new SongEnrichedEvent.
func NewSongEnrichedEvent(impl Implementation, song Song) SongEnrichedEvent {
	return SongEnrichedEvent{baseEvent: newBaseEvent(), Impl: impl, Song: song}
}

// CurrentChangedEvent is published when the cursor moves. Current is nil when the playlist emptied.
type CurrentChangedEvent struct {
	baseEvent
	Impl    Implementation `json:"impl"`
	Current *Song          `json:"current"`
}

// Type returns the event type.
func (e CurrentChangedEvent) Type() EventType { return EventCurrentChanged }

// NewCurrentChangedEvent creates a new CurrentChangedEvent.
func NewCurrentChangedEvent(impl Implementation, current *Song) CurrentChangedEvent {
	return CurrentChangedEvent{baseEvent: newBaseEvent(), Impl: impl, Current: current}
}

// UpNextChangedEvent is published when the up-next queue changes.
type UpNextChangedEvent struct {
	baseEvent
	Impl   Implementation `json:"impl"`
	UpNext []Song         `json:"up_next"`
}

// Type returns the event type.
func (e UpNextChangedEvent) Type() EventType { return EventUpNextChanged }

// NewUpNextChangedEvent creates a new UpNextChangedEvent.
func NewUpNextChangedEvent(impl Implementation, upNext []Song) UpNextChangedEvent {
	return UpNextChangedEvent{baseEvent: newBaseEvent(), Impl: impl, UpNext: upNext}
}

// ImplementationSwitchedEvent is published when the active engine changes.
type ImplementationSwitchedEvent struct {
	baseEvent
	From Implementation `json:"from"`
	To   Implementation `json:"to"`
}

// Type returns the event type.
func (e ImplementationSwitchedEvent) Type() EventType { return EventImplementationSwitched }

// NewImplementationSwitchedEvent creates a new ImplementationSwitchedEvent.
func NewImplementationSwitchedEvent(from, to Implementation) ImplementationSwitchedEvent {
	return ImplementationSwitchedEvent{baseEvent: newBaseEvent(), From: from, To: to}
}

// SessionChangedEvent is published on login and logout. User is empty after logout.
type SessionChangedEvent struct {
	baseEvent
	User string `json:"user"`
}

// Type returns the event type.
func (e SessionChangedEvent) Type() EventType { return EventSessionChanged }

// NewSessionChangedEvent creates a new SessionChangedEvent.
func NewSessionChangedEvent(user string) SessionChangedEvent {
	return SessionChangedEvent{baseEvent: newBaseEvent(), User: user}
}

// FavoritesChangedEvent is published when a favorite is added or removed.
type FavoritesChangedEvent struct {
	baseEvent
	User string   `json:"user"`
	IDs  []SongID `json:"ids"`
}

// Type returns the event type.
func (e FavoritesChangedEvent) Type() EventType { return EventFavoritesChanged }

// NewFavoritesChangedEvent creates a new FavoritesChangedEvent.
func NewFavoritesChangedEvent(user string, ids []SongID) FavoritesChangedEvent {
	return FavoritesChangedEvent{baseEvent: newBaseEvent(), User: user, IDs: ids}
}

// ScanStartedEvent is published when a library scan starts.
type ScanStartedEvent struct {
	baseEvent
	Path string `json:"path"`
}

// Type returns the event type.
func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// NewScanStartedEvent creates a new ScanStartedEvent.
func NewScanStartedEvent(path string) ScanStartedEvent {
	return ScanStartedEvent{baseEvent: newBaseEvent(), Path: path}
}

// ScanProgressEvent is published after each scanned file.
type ScanProgressEvent struct {
	baseEvent
	Progress ScanProgress `json:"progress"`
}

// Type returns the event type.
func (e ScanProgressEvent) Type() EventType { return EventScanProgress }

// NewScanProgressEvent creates a new ScanProgressEvent.
func NewScanProgressEvent(progress ScanProgress) ScanProgressEvent {
	return ScanProgressEvent{baseEvent: newBaseEvent(), Progress: progress}
}

// ScanCompletedEvent is published when a library scan completes.
type ScanCompletedEvent struct {
	baseEvent
	TracksFound []TrackInfo `json:"tracks"`
}

// Type returns the event type.
func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// NewScanCompletedEvent creates a new ScanCompletedEvent.
func NewScanCompletedEvent(tracks []TrackInfo) ScanCompletedEvent {
	return ScanCompletedEvent{baseEvent: newBaseEvent(), TracksFound: tracks}
}

// ScanCancelledEvent is published when a library scan is canceled.
type ScanCancelledEvent struct {
	baseEvent
	Reason string `json:"reason"`
}

// Type returns the event type.
func (e ScanCancelledEvent) Type() EventType { return EventScanCancelled }

// NewScanCancelledEvent creates a new ScanCancelledEvent.
func NewScanCancelledEvent(reason string) ScanCancelledEvent {
	return ScanCancelledEvent{baseEvent: newBaseEvent(), Reason: reason}
}
