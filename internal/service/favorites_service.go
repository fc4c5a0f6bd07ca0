package service

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

const favoritesServiceName = "FavoritesService"

// GuestUser owns the favorites marked while nobody is logged in.
const GuestUser = "guest"

// FavoritesService manages the single logged-in user and that user's
// favorite songs. Favorites are stored by song id and only listed while the
// song is still part of the active playlist.
type FavoritesService struct {
	favorites ports.FavoritesRepository
	sessions  ports.SessionRepository
	playlist  *PlaylistService
	bus       ports.EventBus
	logger    *slog.Logger

	// serializes login/logout against favorite updates
	mu sync.Mutex
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(
	favorites ports.FavoritesRepository,
	sessions ports.SessionRepository,
	playlist *PlaylistService,
	bus ports.EventBus,
	logger *slog.Logger,
) *FavoritesService {
	return &FavoritesService{
		favorites: favorites,
		sessions:  sessions,
		playlist:  playlist,
		bus:       bus,
		logger:    logger,
	}
}

// Login starts a session for username with a fresh token.
// A blank username logs out instead and returns an empty session.
func (s *FavoritesService) Login(username string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Session{}, s.Logout()
	}

	session := domain.Session{User: username, Token: uuid.NewString()}

	s.mu.Lock()
	err := s.sessions.SaveSession(session)
	s.mu.Unlock()
	if err != nil {
		return domain.Session{}, domain.NewServiceError(favoritesServiceName, "Login", "failed to save session", err)
	}

	s.logger.Info("user logged in", slog.String("user", username))
	s.bus.Publish(domain.NewSessionChangedEvent(username))
	return session, nil
}

// Logout ends the session and drops the favorites of the user that owned it.
func (s *FavoritesService) Logout() error {
	s.mu.Lock()
	user, err := s.userLocked()
	if err == nil {
		err = s.favorites.Clear(user)
	}
	if err == nil {
		err = s.sessions.ClearSession()
	}
	s.mu.Unlock()

	if err != nil {
		return domain.NewServiceError(favoritesServiceName, "Logout", "failed to end session", err)
	}

	s.logger.Info("user logged out", slog.String("user", user))
	s.bus.Publish(domain.NewSessionChangedEvent(""))
	return nil
}

// Me returns the logged-in user name, or "" when nobody is logged in.
func (s *FavoritesService) Me() (string, error) {
	session, ok, err := s.sessions.LoadSession()
	if err != nil {
		return "", domain.NewServiceError(favoritesServiceName, "Me", "failed to load session", err)
	}
	if !ok {
		return "", nil
	}
	return session.User, nil
}

// Add marks id as a favorite. The song must be in the active playlist.
func (s *FavoritesService) Add(id domain.SongID) error {
	if !s.playlist.Contains(id) {
		return domain.ErrSongNotFound
	}
	return s.update("Add", id, s.favorites.Add)
}

// Remove unmarks id. Unknown ids are not an error.
func (s *FavoritesService) Remove(id domain.SongID) error {
	return s.update("Remove", id, s.favorites.Remove)
}

func (s *FavoritesService) update(op string, id domain.SongID, apply func(string, domain.SongID) error) error {
	s.mu.Lock()
	user, err := s.userLocked()
	if err == nil {
		err = apply(user, id)
	}
	var ids []domain.SongID
	if err == nil {
		ids, err = s.favorites.List(user)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.NewServiceError(favoritesServiceName, op, "failed to update favorites", err)
	}
	s.bus.Publish(domain.NewFavoritesChangedEvent(user, ids))
	return nil
}

// List returns the favorite songs that are still in the active playlist,
// in ascending id order.
func (s *FavoritesService) List() ([]domain.Song, error) {
	s.mu.Lock()
	user, err := s.userLocked()
	var ids []domain.SongID
	if err == nil {
		ids, err = s.favorites.List(user)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, domain.NewServiceError(favoritesServiceName, "List", "failed to load favorites", err)
	}

	byID := lo.KeyBy(s.playlist.Songs(), func(song domain.Song) domain.SongID { return song.ID })
	return lo.FilterMap(ids, func(id domain.SongID, _ int) (domain.Song, bool) {
		song, ok := byID[id]
		return song, ok
	}), nil
}

// userLocked must be called with mu held.
func (s *FavoritesService) userLocked() (string, error) {
	session, ok, err := s.sessions.LoadSession()
	if err != nil {
		return "", err
	}
	if !ok || session.User == "" {
		return GuestUser, nil
	}
	return session.User, nil
}
