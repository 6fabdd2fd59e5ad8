package nav

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/dasdy/gridfit/model"
)

// FavoritesStore persists the favorites list.
type FavoritesStore interface {
	LoadFavorites() ([]model.ScreenID, error)
	SaveFavorites(favorites []model.ScreenID) error
}

type Favorites struct {
	store FavoritesStore
	set   map[model.ScreenID]struct{}
	lock  sync.RWMutex
}

func NewFavorites(store FavoritesStore) (*Favorites, error) {
	saved, err := store.LoadFavorites()
	if err != nil {
		return nil, fmt.Errorf("could not load favorites: %w", err)
	}

	set := make(map[model.ScreenID]struct{}, len(saved))
	for _, id := range saved {
		set[id] = struct{}{}
	}

	return &Favorites{store: store, set: set, lock: sync.RWMutex{}}, nil
}

// Toggle flips the favorite state of a screen, persists the list and returns
// the new state. On a store failure the in-memory state is rolled back.
func (f *Favorites) Toggle(id model.ScreenID) (bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.toggleLocked(id)
}

// Set makes the favorite state of id equal to want.
func (f *Favorites) Set(id model.ScreenID, want bool) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, ok := f.set[id]; ok == want {
		return nil
	}

	_, err := f.toggleLocked(id)

	return err
}

func (f *Favorites) toggleLocked(id model.ScreenID) (bool, error) {
	_, was := f.set[id]
	if was {
		delete(f.set, id)
	} else {
		f.set[id] = struct{}{}
	}

	if err := f.store.SaveFavorites(f.sortedLocked()); err != nil {
		if was {
			f.set[id] = struct{}{}
		} else {
			delete(f.set, id)
		}

		return was, fmt.Errorf("could not save favorites: %w", err)
	}

	return !was, nil
}

func (f *Favorites) IsFavorite(id model.ScreenID) bool {
	f.lock.RLock()
	defer f.lock.RUnlock()

	_, ok := f.set[id]

	return ok
}

// List returns favorites sorted by id.
func (f *Favorites) List() []model.ScreenID {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.sortedLocked()
}

func (f *Favorites) sortedLocked() []model.ScreenID {
	result := make([]model.ScreenID, 0, len(f.set))
	for id := range f.set {
		result = append(result, id)
	}

	slices.SortFunc(result, compareIDs)

	return result
}

func compareIDs(a, b model.ScreenID) int {
	return cmp.Or(cmp.Compare(a.Tab, b.Tab), cmp.Compare(a.Subscreen, b.Subscreen))
}
