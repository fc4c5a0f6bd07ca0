package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/samber/lo"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// bind decodes the body into v. A request without a content type is read as JSON.
func bind(r *http.Request, v render.Binder) error {
	if r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	return render.Bind(r, v)
}

func songIDParam(r *http.Request) (domain.SongID, error) {
	return domain.ParseSongID(chi.URLParam(r, "id"))
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newSongList(s.playlist.Songs()))
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}

	song, err := s.playlist.AddSong(r.Context(), req.Input())
	if err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newSongResponse(song))
}

func (s *Server) handleRemoveSong(w http.ResponseWriter, r *http.Request) {
	id, err := songIDParam(r)
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	if err := s.playlist.RemoveSong(id); err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, map[string]bool{"removed": true})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newCurrentResponse(s.playlist.Play(r.Context())))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newCurrentResponse(s.playlist.Next(r.Context())))
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newCurrentResponse(s.playlist.Previous(r.Context())))
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req SongIDRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	if err := s.playlist.EnqueueNext(*req.SongID); err != nil {
		_ = render.Render(w, r, errNotFound("Song not found to enqueue"))
		return
	}
	render.JSON(w, r, map[string]bool{"enqueued": true})
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newSongList(s.playlist.Queue()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newSongList(s.playlist.History()))
}

func (s *Server) handleGetImpl(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, ImplResponse{Impl: s.playlist.Active()})
}

func (s *Server) handleSwitchImpl(w http.ResponseWriter, r *http.Request) {
	var req ImplRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	if err := s.playlist.Switch(domain.Implementation(req.Impl)); err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, ImplResponse{Impl: s.playlist.Active()})
}

func (s *Server) handleSeed(source func() ports.SongSource, enrich bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src := source()
		if src == nil {
			_ = render.Render(w, r, &ErrResponse{HTTPStatusCode: http.StatusNotImplemented, Detail: "seeding is not configured"})
			return
		}

		added, err := s.playlist.Seed(r.Context(), src, enrich)
		if err != nil {
			s.logger.Error("seed failed", slog.String("source", src.Name()), slog.String("error", err.Error()))
			_ = render.Render(w, r, errFor(err))
			return
		}
		render.JSON(w, r, SeedResponse{Seeded: len(added), Songs: newSongList(added)})
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.favorites.Me()
	if err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, UserResponse{User: lo.EmptyableToPtr(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	session, err := s.favorites.Login(*req.Username)
	if err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, UserResponse{User: lo.EmptyableToPtr(session.User), Token: session.Token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.favorites.Logout(); err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, map[string]bool{"ok": true})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	songs, err := s.favorites.List()
	if err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, newSongList(songs))
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req SongIDRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	if err := s.favorites.Add(*req.SongID); err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, map[string]bool{"favorited": true})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := songIDParam(r)
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}
	if err := s.favorites.Remove(id); err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, map[string]bool{"favorited": false})
}

func (s *Server) handleLibraryScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := bind(r, &req); err != nil {
		_ = render.Render(w, r, errBadRequest(err))
		return
	}

	songs, err := s.library.ScanAndImport(r.Context(), req.Path)
	if err != nil {
		_ = render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, ScanResponse{Imported: len(songs), Songs: newSongList(songs)})
}
