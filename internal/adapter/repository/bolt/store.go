// Package bolt implements the favorites and session repositories on an
// embedded bbolt database file.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
	bolt "go.etcd.io/bbolt"
)

const (
	// BucketFavorites holds one nested bucket per user, keyed by song id.
	BucketFavorites = "favorites"
	// BucketSession holds the current session under sessionKey.
	BucketSession = "session"
)

var sessionKey = []byte("current")

// Store is a bbolt-backed FavoritesRepository and SessionRepository.
//
// Thread-safety: bbolt serialises write transactions; Store adds no locking.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and initialises its buckets.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domain.NewRepositoryError("open", "bolt", "failed to create directory", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, domain.NewRepositoryError("open", "bolt", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketFavorites, BucketSession} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, domain.NewRepositoryError("open", "bolt", "failed to create buckets", err)
	}

	logger.Info("favorites database opened", slog.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func songKey(id domain.SongID) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

// Add implements ports.FavoritesRepository.
func (s *Store) Add(user string, id domain.SongID) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(BucketFavorites)).CreateBucketIfNotExists([]byte(user))
		if err != nil {
			return err
		}
		return b.Put(songKey(id), []byte{1})
	})
	if err != nil {
		return domain.NewRepositoryError("add", "favorites", user, err)
	}
	return nil
}

// Remove implements ports.FavoritesRepository.
func (s *Store) Remove(user string, id domain.SongID) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFavorites)).Bucket([]byte(user))
		if b == nil {
			return nil
		}
		return b.Delete(songKey(id))
	})
	if err != nil {
		return domain.NewRepositoryError("remove", "favorites", user, err)
	}
	return nil
}

// List implements ports.FavoritesRepository. Keys are big-endian so the
// cursor walks ids in ascending order.
func (s *Store) List(user string) ([]domain.SongID, error) {
	var ids []domain.SongID
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFavorites)).Bucket([]byte(user))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			ids = append(ids, domain.SongID(binary.BigEndian.Uint64(k)))
			return nil
		})
	})
	if err != nil {
		return nil, domain.NewRepositoryError("list", "favorites", user, err)
	}
	return ids, nil
}

// Clear implements ports.FavoritesRepository.
func (s *Store) Clear(user string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(BucketFavorites)).DeleteBucket([]byte(user))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return domain.NewRepositoryError("clear", "favorites", user, err)
	}
	return nil
}

// SaveSession implements ports.SessionRepository.
func (s *Store) SaveSession(session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewRepositoryError("save", "session", "failed to marshal session", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketSession)).Put(sessionKey, data)
	})
	if err != nil {
		return domain.NewRepositoryError("save", "session", "failed to write session", err)
	}
	return nil
}

// LoadSession implements ports.SessionRepository.
func (s *Store) LoadSession() (domain.Session, bool, error) {
	var (
		session domain.Session
		found   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(BucketSession)).Get(sessionKey)
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &session)
	})
	if err != nil {
		return domain.Session{}, false, domain.NewRepositoryError("load", "session", "failed to read session", err)
	}
	return session, found, nil
}

// ClearSession implements ports.SessionRepository.
func (s *Store) ClearSession() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketSession)).Delete(sessionKey)
	})
	if err != nil {
		return domain.NewRepositoryError("clear", "session", "failed to delete session", err)
	}
	return nil
}

var (
	_ ports.FavoritesRepository = (*Store)(nil)
	_ ports.SessionRepository   = (*Store)(nil)
)
