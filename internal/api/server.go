// Package api serves the playlist over HTTP and streams domain events over a websocket.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/olahol/melody"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
	"github.com/tejashwikalptaru/playring/internal/service"
)

// ShutdownTimeout bounds graceful shutdown of in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Deps are the services the API exposes.
type Deps struct {
	Playlist  *service.PlaylistService
	Favorites *service.FavoritesService
	Library   *service.LibraryService
	Bus       ports.FilteringEventBus
	Logger    *slog.Logger
}

// Options configure the router.
type Options struct {
	// CORSOrigins lists the allowed origins; "*" allows any
	CORSOrigins []string

	// RequestTimeout bounds every REST request (0 = none)
	RequestTimeout time.Duration

	// WebDir is served under /web/ when it exists
	WebDir string

	// SeedSource backs POST /seed, FastSeedSource backs POST /seed_fast
	SeedSource     ports.SongSource
	FastSeedSource ports.SongSource
}

// Server is the HTTP API.
type Server struct {
	playlist  *service.PlaylistService
	favorites *service.FavoritesService
	library   *service.LibraryService
	bus       ports.FilteringEventBus
	logger    *slog.Logger
	opts      Options

	router *chi.Mux
	ws     *melody.Melody
	subID  domain.SubscriptionID
}

// New builds the router and subscribes the websocket stream to the bus.
// Call Close to unsubscribe.
func New(deps Deps, opts Options) *Server {
	s := &Server{
		playlist:  deps.Playlist,
		favorites: deps.Favorites,
		library:   deps.Library,
		bus:       deps.Bus,
		logger:    deps.Logger,
		opts:      opts,
		ws:        melody.New(),
	}
	s.ws.Upgrader.CheckOrigin = func(*http.Request) bool { return true }
	s.setupEvents()
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusTemporaryRedirect)
	})
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.opts.WebDir != "" {
		if info, err := os.Stat(s.opts.WebDir); err == nil && info.IsDir() {
			r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(s.opts.WebDir))))
		} else {
			s.logger.Warn("web directory not found, static files disabled", slog.String("path", s.opts.WebDir))
		}
	}

	// The websocket outlives the request timeout.
	r.Get("/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		if s.opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.opts.RequestTimeout))
		}
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", s.handleHealth)

		r.Get("/songs", s.handleListSongs)
		r.Post("/songs", s.handleAddSong)
		r.Delete("/songs/{id}", s.handleRemoveSong)

		r.Get("/play", s.handlePlay)
		r.Post("/next", s.handleNext)
		r.Post("/previous", s.handlePrevious)
		r.Post("/enqueue", s.handleEnqueue)
		r.Get("/queue", s.handleQueue)
		r.Get("/history", s.handleHistory)

		r.Get("/impl", s.handleGetImpl)
		r.Post("/impl", s.handleSwitchImpl)

		r.Post("/seed", s.handleSeed(func() ports.SongSource { return s.opts.SeedSource }, true))
		r.Post("/seed_fast", s.handleSeed(func() ports.SongSource { return s.opts.FastSeedSource }, false))

		r.Get("/me", s.handleMe)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleRemoveFavorite)

		if s.library != nil {
			r.Post("/library/scan", s.handleLibraryScan)
		}
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	_ = s.ws.Close()
	err := srv.Shutdown(shutdownCtx)
	<-errCh

	s.logger.Info("http server stopped")
	return err
}

// Close unsubscribes from the bus and disconnects websocket clients.
func (s *Server) Close() error {
	s.bus.Unsubscribe(s.subID)
	if s.ws.IsClosed() {
		return nil
	}
	return s.ws.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
