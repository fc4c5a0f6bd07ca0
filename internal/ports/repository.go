package ports

import (
	"github.com/tejashwikalptaru/playring/internal/domain"
)

// FavoritesRepository stores the favorite song ids of each user.
// Implementations can be in-memory or backed by an embedded database.
//
// Thread-safety: Implementations must be thread-safe.
type FavoritesRepository interface {
	// Add marks id as a favorite of user. Adding twice is a no-op.
	Add(user string, id domain.SongID) error

	// Remove unmarks id. Removing an id that is not a favorite is a no-op.
	Remove(user string, id domain.SongID) error

	// List returns the favorites of user in ascending id order.
	// An unknown user has no favorites (not an error).
	List(user string) ([]domain.SongID, error)

	// Clear drops every favorite of user.
	Clear(user string) error
}

// SessionRepository stores the single logged-in session.
//
// Thread-safety: Implementations must be thread-safe.
type SessionRepository interface {
	// SaveSession replaces the current session.
	SaveSession(session domain.Session) error

	// LoadSession returns the current session, or ok=false when nobody is logged in.
	LoadSession() (session domain.Session, ok bool, err error)

	// ClearSession logs out.
	ClearSession() error
}
