package nav_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(tab, subscreen string) model.ScreenID {
	return model.ScreenID{Tab: tab, Subscreen: subscreen}
}

type memoryStore struct {
	saved   []model.ScreenID
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryStore) LoadFavorites() ([]model.ScreenID, error) {
	return m.saved, m.loadErr
}

func (m *memoryStore) SaveFavorites(favorites []model.ScreenID) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saves++
	m.saved = favorites

	return nil
}

func TestBreadcrumbs(t *testing.T) {
	screen := model.Subscreen{ID: id("squad", "overview"), Title: "Squad Overview"}

	crumbs := nav.Breadcrumbs(screen)

	require.Len(t, crumbs, 3)
	assert.Equal(t, "/", crumbs[0].Href)
	assert.Equal(t, "/search?q=squad", crumbs[1].Href)
	assert.Empty(t, crumbs[2].Href)
	assert.Equal(t, "Home › Squad › Squad Overview", nav.BreadcrumbString(crumbs))

	untitled := nav.Breadcrumbs(model.Subscreen{ID: id("club", "youth-setup")})
	assert.Equal(t, "Home › Club › Youth Setup", nav.BreadcrumbString(untitled))
}

func TestHistory(t *testing.T) {
	t.Run("back walks to previous screen", func(t *testing.T) {
		h := nav.NewHistory(10)

		_, ok := h.Back()
		assert.False(t, ok)

		h.Push(id("squad", "overview"))
		h.Push(id("squad", "overview"))
		h.Push(id("tactics", "formation"))

		assert.Equal(t, 2, h.Len())

		prev, ok := h.Back()
		require.True(t, ok)
		assert.Equal(t, id("squad", "overview"), prev)

		current, ok := h.Current()
		require.True(t, ok)
		assert.Equal(t, id("squad", "overview"), current)

		_, ok = h.Back()
		assert.False(t, ok)
	})

	t.Run("bounded", func(t *testing.T) {
		h := nav.NewHistory(3)

		for _, tab := range []string{"a", "b", "c", "d", "e"} {
			h.Push(id(tab, "x"))
		}

		assert.Equal(t, []model.ScreenID{id("c", "x"), id("d", "x"), id("e", "x")}, h.Entries())
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		h := nav.NewHistory(0)

		for i := range nav.DefaultHistoryLimit + 5 {
			h.Push(id("tab", strconv.Itoa(i)))
		}

		assert.Equal(t, nav.DefaultHistoryLimit, h.Len())
	})
}

func TestSearch(t *testing.T) {
	screens := []model.Subscreen{
		{ID: id("reports", "nightclub")},
		{ID: id("clubhouse", "info")},
		{ID: id("finances", "club")},
		{ID: id("club", "facilities"), Title: "Facilities"},
		{ID: id("squad", "overview")},
	}

	tests := []struct {
		name  string
		query string
		want  []model.ScreenID
	}{
		{
			name:  "ranked exact prefix substring",
			query: "club",
			want: []model.ScreenID{
				id("club", "facilities"),
				id("finances", "club"),
				id("clubhouse", "info"),
				id("reports", "nightclub"),
			},
		},
		{name: "case insensitive title", query: "FACIL", want: []model.ScreenID{id("club", "facilities")}},
		{name: "full id", query: "squad/overview", want: []model.ScreenID{id("squad", "overview")}},
		{name: "letters in order", query: "fclt", want: []model.ScreenID{id("club", "facilities")}},
		{name: "scattered letters sorted by id", query: "cbf", want: []model.ScreenID{id("club", "facilities"), id("clubhouse", "info")}},
		{name: "substring before scattered letters", query: "ub/f", want: []model.ScreenID{id("club", "facilities"), id("clubhouse", "info")}},
		{name: "no match", query: "wages", want: []model.ScreenID{}},
		{name: "blank", query: "   ", want: []model.ScreenID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := nav.Search(screens, tt.query)

			ids := make([]model.ScreenID, 0, len(found))
			for _, s := range found {
				ids = append(ids, s.ID)
			}

			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("built-in catalog", func(t *testing.T) {
		found := nav.Search(layout.Builtin().Screens, "overview")

		require.Len(t, found, 2)
		assert.Equal(t, id("dashboard", "overview"), found[0].ID)
		assert.Equal(t, id("squad", "overview"), found[1].ID)
	})
}

func TestFavorites(t *testing.T) {
	t.Run("toggle persists sorted list", func(t *testing.T) {
		store := &memoryStore{saved: []model.ScreenID{id("squad", "overview")}}

		favorites, err := nav.NewFavorites(store)
		require.NoError(t, err)
		assert.True(t, favorites.IsFavorite(id("squad", "overview")))

		on, err := favorites.Toggle(id("finances", "wages"))
		require.NoError(t, err)
		assert.True(t, on)
		assert.Equal(t, []model.ScreenID{id("finances", "wages"), id("squad", "overview")}, store.saved)

		on, err = favorites.Toggle(id("squad", "overview"))
		require.NoError(t, err)
		assert.False(t, on)
		assert.Equal(t, []model.ScreenID{id("finances", "wages")}, favorites.List())
		assert.Equal(t, 2, store.saves)
	})

	t.Run("set is idempotent", func(t *testing.T) {
		store := &memoryStore{}

		favorites, err := nav.NewFavorites(store)
		require.NoError(t, err)

		require.NoError(t, favorites.Set(id("club", "facilities"), true))
		require.NoError(t, favorites.Set(id("club", "facilities"), true))
		assert.Equal(t, 1, store.saves)

		require.NoError(t, favorites.Set(id("club", "facilities"), false))
		assert.Empty(t, favorites.List())
	})

	t.Run("concurrent set keeps the favorite", func(t *testing.T) {
		store := &memoryStore{}

		favorites, err := nav.NewFavorites(store)
		require.NoError(t, err)

		var wg sync.WaitGroup

		for range 50 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				assert.NoError(t, favorites.Set(id("club", "facilities"), true))
			}()
		}

		wg.Wait()

		assert.True(t, favorites.IsFavorite(id("club", "facilities")))
		assert.Equal(t, 1, store.saves)
	})

	t.Run("failed save rolls back", func(t *testing.T) {
		store := &memoryStore{saveErr: errors.New("disk full")}

		favorites, err := nav.NewFavorites(store)
		require.NoError(t, err)

		_, err = favorites.Toggle(id("club", "facilities"))
		require.Error(t, err)
		assert.False(t, favorites.IsFavorite(id("club", "facilities")))
	})

	t.Run("load error", func(t *testing.T) {
		_, err := nav.NewNavigator(&memoryStore{loadErr: errors.New("locked")}, 10)

		require.Error(t, err)
	})
}

func TestNavigatorVisit(t *testing.T) {
	n, err := nav.NewNavigator(&memoryStore{}, 5)
	require.NoError(t, err)

	n.Visit(id("squad", "overview"))

	current, ok := n.History.Current()
	require.True(t, ok)
	assert.Equal(t, id("squad", "overview"), current)
}
