// Package service provides business logic for playring.
package service

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/playlist"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

const playlistServiceName = "PlaylistService"

// PlaylistService owns one engine of each implementation and routes every
// call to the active one. Switching never moves data between them.
//
// Engines are not reentrant, so every engine call runs under mu. Preview
// lookups and event publishing happen outside the lock. Songs returned by
// the service are copies.
type PlaylistService struct {
	// Dependencies (injected)
	lookup ports.PreviewLookup // may be nil
	bus    ports.EventBus
	logger *slog.Logger

	// State
	engines map[domain.Implementation]playlist.Engine
	active  domain.Implementation

	// Concurrency control
	mu sync.Mutex
}

// NewPlaylistService creates a service with two empty engines and active
// selected. lookup may be nil, in which case songs are never enriched.
func NewPlaylistService(
	active domain.Implementation,
	lookup ports.PreviewLookup,
	bus ports.EventBus,
	logger *slog.Logger,
) (*PlaylistService, error) {
	if _, err := domain.ParseImplementation(string(active)); err != nil {
		return nil, domain.NewServiceError(playlistServiceName, "New", "invalid implementation", err)
	}

	return &PlaylistService{
		lookup: lookup,
		bus:    bus,
		logger: logger,
		engines: map[domain.Implementation]playlist.Engine{
			domain.ImplCircular: playlist.NewRing(),
			domain.ImplList:     playlist.NewFlat(),
		},
		active: active,
	}, nil
}

// Active returns the implementation calls are routed to.
func (s *PlaylistService) Active() domain.Implementation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Switch selects the engine used by subsequent calls.
func (s *PlaylistService) Switch(impl domain.Implementation) error {
	if _, err := domain.ParseImplementation(string(impl)); err != nil {
		return err
	}

	s.mu.Lock()
	from := s.active
	s.active = impl
	s.mu.Unlock()

	if from != impl {
		s.logger.Info("playlist implementation switched",
			slog.String("from", string(from)),
			slog.String("to", string(impl)))
		s.bus.Publish(domain.NewImplementationSwitchedEvent(from, impl))
	}
	return nil
}

// Toggle switches to the other implementation and returns it.
func (s *PlaylistService) Toggle() domain.Implementation {
	s.mu.Lock()
	from := s.active
	s.active = from.Other()
	to := s.active
	s.mu.Unlock()

	s.bus.Publish(domain.NewImplementationSwitchedEvent(from, to))
	return to
}

// AddSong validates in, looks up a preview URL when none was given, and
// appends the song to the active playlist.
func (s *PlaylistService) AddSong(ctx context.Context, in domain.SongInput) (domain.Song, error) {
	if err := in.Validate(); err != nil {
		return domain.Song{}, err
	}
	if in.AudioURL == "" {
		in.AudioURL = s.findPreview(ctx, in.Title, in.Artist)
	}

	song, events := s.addLocked(in)
	s.publish(events...)

	s.logger.Debug("song added",
		slog.Int("id", int(song.ID)),
		slog.String("song", song.String()))
	return song, nil
}

func (s *PlaylistService) addLocked(in domain.SongInput) (domain.Song, []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addTo(s.engines[s.active], in)
}

// addTo appends in to e. The caller holds mu.
func addTo(e playlist.Engine, in domain.SongInput) (domain.Song, []domain.Event) {
	before := captureCursor(e)
	song := *e.AddSong(in)

	events := []domain.Event{domain.NewSongAddedEvent(e.Kind(), song)}
	return song, append(events, cursorEvents(e, before)...)
}

// RemoveSong removes id from the active playlist. Removing the current song
// advances the cursor first.
func (s *PlaylistService) RemoveSong(id domain.SongID) error {
	s.mu.Lock()
	e := s.engines[s.active]
	before := captureCursor(e)
	ok := e.RemoveSong(id)
	var events []domain.Event
	if ok {
		events = append([]domain.Event{domain.NewSongRemovedEvent(e.Kind(), id)}, cursorEvents(e, before)...)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrSongNotFound
	}
	s.publish(events...)
	return nil
}

// Play returns the current song, or nil when the playlist is empty.
func (s *PlaylistService) Play(ctx context.Context) *domain.Song {
	return s.navigate(ctx, playlist.Engine.Play)
}

// Current returns the current song without looking up a preview.
func (s *PlaylistService) Current() *domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySong(s.engines[s.active].Play())
}

// Next advances (honouring up-next) and returns the new current song.
func (s *PlaylistService) Next(ctx context.Context) *domain.Song {
	return s.navigate(ctx, playlist.Engine.Next)
}

// Previous goes back through history and returns the new current song.
func (s *PlaylistService) Previous(ctx context.Context) *domain.Song {
	return s.navigate(ctx, playlist.Engine.Previous)
}

// navigate runs move under the lock and then fills in a missing preview URL.
func (s *PlaylistService) navigate(ctx context.Context, move func(playlist.Engine) *domain.Song) *domain.Song {
	s.mu.Lock()
	e := s.engines[s.active]
	before := captureCursor(e)
	song := copySong(move(e))
	events := cursorEvents(e, before)
	s.mu.Unlock()

	s.publish(events...)

	if song != nil && song.AudioURL == "" {
		return s.enrich(ctx, e, *song)
	}
	return song
}

// enrich looks up a preview for song and stores it on the engine's shared
// record, so history and up-next see it too.
func (s *PlaylistService) enrich(ctx context.Context, e playlist.Engine, song domain.Song) *domain.Song {
	url := s.findPreview(ctx, song.Title, song.Artist)
	if url == "" {
		return &song
	}

	s.mu.Lock()
	if rec, ok := e.Song(song.ID); ok && rec.AudioURL == "" {
		e.SetAudioURL(song.ID, url)
	}
	rec, _ := e.Song(song.ID)
	song = *rec
	s.mu.Unlock()

	s.bus.Publish(domain.NewSongEnrichedEvent(e.Kind(), song))
	return &song
}

func (s *PlaylistService) findPreview(ctx context.Context, title, artist string) string {
	if s.lookup == nil {
		return ""
	}
	url, err := s.lookup.Lookup(ctx, title, artist)
	if err != nil {
		level := slog.LevelDebug
		if !errors.Is(err, domain.ErrLookupFailed) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "preview lookup failed",
			slog.String("title", title),
			slog.String("artist", artist),
			slog.String("error", err.Error()))
		return ""
	}
	return url
}

// EnqueueNext schedules id to play on the next call to Next.
func (s *PlaylistService) EnqueueNext(id domain.SongID) error {
	s.mu.Lock()
	e := s.engines[s.active]
	ok := e.EnqueueNext(id)
	var upNext []domain.Song
	if ok {
		upNext = collect(e.UpNext())
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrSongNotFound
	}
	s.bus.Publish(domain.NewUpNextChangedEvent(e.Kind(), upNext))
	return nil
}

// Songs lists the active playlist in order.
func (s *PlaylistService) Songs() []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect(s.engines[s.active].ListSongs())
}

// Queue lists the up-next queue, front first.
func (s *PlaylistService) Queue() []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect(s.engines[s.active].UpNext())
}

// History lists previously current songs, most recent first.
func (s *PlaylistService) History() []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect(s.engines[s.active].History())
}

// Contains reports whether id is in the active playlist.
func (s *PlaylistService) Contains(id domain.SongID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engines[s.active].Contains(id)
}

// Len returns the size of the active playlist.
func (s *PlaylistService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engines[s.active].Len()
}

// Seed adds every song of src to the active playlist. Songs without an
// audio URL go through the preview lookup only when enrich is set.
func (s *PlaylistService) Seed(ctx context.Context, src ports.SongSource, enrich bool) ([]domain.Song, error) {
	inputs, err := src.Songs(ctx)
	if err != nil {
		return nil, domain.NewServiceError(playlistServiceName, "Seed", "failed to load "+src.Name(), err)
	}

	added := make([]domain.Song, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		if err := in.Validate(); err != nil {
			return added, err
		}
		if enrich && in.AudioURL == "" {
			in.AudioURL = s.findPreview(ctx, in.Title, in.Artist)
		}
		song, events := s.addLocked(in)
		s.publish(events...)
		added = append(added, song)
	}

	s.logger.Info("playlist seeded",
		slog.String("source", src.Name()),
		slog.Int("songs", len(added)))
	return added, nil
}

// SeedIfEmpty seeds the active playlist from src only when it has no songs.
// The emptiness check and the adds happen under one lock, so a song added
// while src loads cancels the seed. Seeded songs are not enriched.
func (s *PlaylistService) SeedIfEmpty(ctx context.Context, src ports.SongSource) (int, error) {
	if s.Len() > 0 {
		return 0, nil
	}

	inputs, err := src.Songs(ctx)
	if err != nil {
		return 0, domain.NewServiceError(playlistServiceName, "SeedIfEmpty", "failed to load "+src.Name(), err)
	}
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return 0, err
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	e := s.engines[s.active]
	if e.Len() > 0 {
		s.mu.Unlock()
		return 0, nil
	}
	var events []domain.Event
	for _, in := range inputs {
		_, added := addTo(e, in)
		events = append(events, added...)
	}
	s.mu.Unlock()

	s.publish(events...)
	s.logger.Info("playlist seeded",
		slog.String("source", src.Name()),
		slog.Int("songs", len(inputs)))
	return len(inputs), nil
}

func (s *PlaylistService) publish(events ...domain.Event) {
	for _, e := range events {
		s.bus.Publish(e)
	}
}

// cursor is the observable navigation state used to decide which change
// events an operation produced.
type cursor struct {
	current domain.SongID // 0 when empty
	upNext  []domain.SongID
}

func captureCursor(e playlist.Engine) cursor {
	c := cursor{}
	if cur := e.Play(); cur != nil {
		c.current = cur.ID
	}
	for song := range e.UpNext() {
		c.upNext = append(c.upNext, song.ID)
	}
	return c
}

// cursorEvents must be called with the service lock held.
func cursorEvents(e playlist.Engine, before cursor) []domain.Event {
	after := captureCursor(e)
	var events []domain.Event
	if after.current != before.current {
		events = append(events, domain.NewCurrentChangedEvent(e.Kind(), copySong(e.Play())))
	}
	if !slices.Equal(after.upNext, before.upNext) {
		events = append(events, domain.NewUpNextChangedEvent(e.Kind(), collect(e.UpNext())))
	}
	return events
}

func copySong(song *domain.Song) *domain.Song {
	if song == nil {
		return nil
	}
	c := *song
	return &c
}

func collect(seq iter.Seq[*domain.Song]) []domain.Song {
	return lo.Map(slices.Collect(seq), func(song *domain.Song, _ int) domain.Song {
		return *song
	})
}
