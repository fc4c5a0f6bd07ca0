// Package memory provides in-memory repositories. Nothing survives a restart.
package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// FavoritesRepository implements ports.FavoritesRepository with a map of sets.
//
// Thread-safe: All operations protected by sync.RWMutex.
type FavoritesRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[domain.SongID]struct{}
}

// NewFavoritesRepository creates an empty favorites repository.
func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{
		byUser: make(map[string]map[domain.SongID]struct{}),
	}
}

// Add marks id as a favorite of user.
func (r *FavoritesRepository) Add(user string, id domain.SongID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.byUser[user]
	if !ok {
		set = make(map[domain.SongID]struct{})
		r.byUser[user] = set
	}
	set[id] = struct{}{}
	return nil
}

// Remove unmarks id.
func (r *FavoritesRepository) Remove(user string, id domain.SongID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser[user], id)
	return nil
}

// List returns the favorites of user in ascending id order.
func (r *FavoritesRepository) List(user string) ([]domain.SongID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byUser[user])), nil
}

// Clear drops every favorite of user.
func (r *FavoritesRepository) Clear(user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, user)
	return nil
}

var _ ports.FavoritesRepository = (*FavoritesRepository)(nil)
