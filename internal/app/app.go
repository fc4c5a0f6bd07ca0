// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/tejashwikalptaru/playring/internal/adapter/catalog"
	"github.com/tejashwikalptaru/playring/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/playring/internal/adapter/lookup"
	"github.com/tejashwikalptaru/playring/internal/adapter/repository/bolt"
	"github.com/tejashwikalptaru/playring/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/playring/internal/adapter/tags"
	"github.com/tejashwikalptaru/playring/internal/api"
	"github.com/tejashwikalptaru/playring/internal/config"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/logger"
	"github.com/tejashwikalptaru/playring/internal/ports"
	"github.com/tejashwikalptaru/playring/internal/service"
)

// Application is the root application structure that holds all dependencies.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Seeding the playlist and starting the library watcher
// - Shutting everything down in reverse order
type Application struct {
	cfg    *config.Config
	logger *slog.Logger

	// Infrastructure
	eventBus *eventbus.SyncEventBus
	store    *bolt.Store // nil when favorites live in memory

	// Services
	playlistService  *service.PlaylistService
	favoritesService *service.FavoritesService
	libraryService   *service.LibraryService

	api *api.Server

	// Library watcher
	watchCancel context.CancelFunc
	watchDone   chan struct{}

	noLookup bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option customizes NewApplication.
type Option func(*Application)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithoutPreviewLookup leaves songs without an audio URL as they are. Front-ends
// that never show URLs use it to stay off the network.
func WithoutPreviewLookup() Option {
	return func(a *Application) { a.noLookup = true }
}

// NewApplication creates a new application with all dependencies wired.
// cfg must already be validated.
func NewApplication(cfg *config.Config, opts ...Option) (*Application, error) {
	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}

	// Step 1: Create logger
	if app.logger == nil {
		app.logger = logger.NewLogger(cfg.Log.LoggerConfig())
	}
	app.logger.Info("initializing application", slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(app.logger.With(slog.String("component", "eventbus")))

	// Step 3: Create repositories
	favorites, sessions, err := app.openRepositories()
	if err != nil {
		return nil, err
	}

	// Step 4: Create services
	impl, err := domain.ParseImplementation(cfg.Playlist.Impl)
	if err != nil {
		app.closeStore()
		return nil, fmt.Errorf("invalid playlist implementation: %w", err)
	}

	app.playlistService, err = service.NewPlaylistService(
		impl,
		app.previewLookup(),
		app.eventBus,
		app.logger.With(slog.String("service", "playlist")),
	)
	if err != nil {
		app.closeStore()
		return nil, fmt.Errorf("failed to create playlist service: %w", err)
	}

	app.favoritesService = service.NewFavoritesService(
		favorites,
		sessions,
		app.playlistService,
		app.eventBus,
		app.logger.With(slog.String("service", "favorites")),
	)

	app.libraryService = service.NewLibraryService(
		tags.NewReader(),
		app.playlistService,
		app.eventBus,
		app.logger.With(slog.String("service", "library")),
	)

	// Step 5: Create the HTTP API
	app.api = api.New(api.Deps{
		Playlist:  app.playlistService,
		Favorites: app.favoritesService,
		Library:   app.libraryService,
		Bus:       app.eventBus,
		Logger:    app.logger.With(slog.String("component", "api")),
	}, api.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout(),
		WebDir:         cfg.Server.WebDir,
		SeedSource:     catalog.Popular(),
		FastSeedSource: catalog.Demo(),
	})

	return app, nil
}

func (a *Application) openRepositories() (ports.FavoritesRepository, ports.SessionRepository, error) {
	path := a.cfg.Storage.FavoritesDB
	if path == "" {
		return memory.NewFavoritesRepository(), memory.NewSessionRepository(), nil
	}

	store, err := bolt.Open(path, a.logger.With(slog.String("component", "bolt")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open favorites database: %w", err)
	}
	a.store = store
	return store, store, nil
}

// previewLookup returns the iTunes search backed by the demo table, the demo
// table alone when lookups are disabled, or nil with WithoutPreviewLookup.
func (a *Application) previewLookup() ports.PreviewLookup {
	if a.noLookup {
		return nil
	}
	demo := lookup.NewDemo(nil)
	if !a.cfg.Lookup.Enabled {
		return demo
	}

	itunes := lookup.NewITunes(
		a.cfg.Lookup.Endpoint,
		a.cfg.Lookup.Timeout(),
		a.logger.With(slog.String("lookup", "itunes")),
	)
	return lookup.NewChain(a.logger.With(slog.String("component", "lookup")), itunes, demo)
}

// seedSource returns the configured startup seed, or nil for none.
func (a *Application) seedSource() ports.SongSource {
	switch a.cfg.Playlist.Seed {
	case config.SeedDemo:
		return catalog.Demo()
	case config.SeedFile:
		return catalog.NewCSVSource(a.cfg.Playlist.SeedFile)
	default:
		return nil
	}
}

// Start seeds an empty playlist and starts the library watcher when one is
// configured. The watcher runs until Shutdown.
func (a *Application) Start(ctx context.Context) error {
	if src := a.seedSource(); src != nil {
		added, err := a.playlistService.SeedIfEmpty(ctx, src)
		if err != nil {
			return fmt.Errorf("failed to seed playlist: %w", err)
		}
		a.logger.Info("startup seed complete", slog.String("source", src.Name()), slog.Int("songs", added))
	}

	if dir := a.cfg.Library.WatchDir; dir != "" && a.watchCancel == nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		a.watchCancel = cancel
		a.watchDone = make(chan struct{})

		go func() {
			defer close(a.watchDone)
			if err := a.libraryService.Watch(watchCtx, dir); err != nil {
				a.logger.Error("library watcher stopped", slog.String("dir", dir), slog.Any("error", err))
			}
		}()
	}
	return nil
}

// Run starts the application and serves the API until ctx is canceled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.logger.Info("playring started", slog.String("addr", a.cfg.Server.Addr))
	return a.api.ListenAndServe(ctx, a.cfg.Server.Addr)
}

// Handler returns the HTTP handler without listening, for tests and embedding.
func (a *Application) Handler() http.Handler {
	return a.api.Handler()
}

// GetServices returns the application services.
func (a *Application) GetServices() (*service.PlaylistService, *service.FavoritesService, *service.LibraryService) {
	return a.playlistService, a.favoritesService, a.libraryService
}

// GetEventBus returns the application event bus.
func (a *Application) GetEventBus() ports.FilteringEventBus {
	return a.eventBus
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Shutdown gracefully shuts down the application. It is safe to call more than once.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		var errs []error
		if a.watchCancel != nil {
			a.watchCancel()
			<-a.watchDone
		}

		if err := a.api.Close(); err != nil {
			errs = append(errs, fmt.Errorf("api: %w", err))
		}
		if err := a.libraryService.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("library service: %w", err))
		}
		if err := a.eventBus.Close(); err != nil && !errors.Is(err, eventbus.ErrClosed) {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
		if a.store != nil {
			if err := a.store.Close(); err != nil {
				errs = append(errs, fmt.Errorf("favorites database: %w", err))
			}
		}

		a.shutdownErr = errors.Join(errs...)
		a.logger.Info("application shutdown complete")
	})
	return a.shutdownErr
}

func (a *Application) closeStore() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
