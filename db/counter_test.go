package db_test

import (
	"iter"
	"testing"
	"time"

	"github.com/dasdy/gridfit/db"
	"github.com/dasdy/gridfit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitReady(t *testing.T, counter *db.TransitionCounter) {
	t.Helper()

	select {
	case <-counter.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("counter did not finish scanning history")
	}
}

// gatedStorage holds the history replay until release is closed.
type gatedStorage struct {
	visits  []model.Visit
	release chan struct{}
}

func (g *gatedStorage) StoreVisit(model.ScreenID) error { return nil }

func (g *gatedStorage) AllVisits() (iter.Seq[model.Visit], error) {
	return func(yield func(model.Visit) bool) {
		<-g.release

		for _, v := range g.visits {
			if !yield(v) {
				return
			}
		}
	}, nil
}

func (g *gatedStorage) LoadFavorites() ([]model.ScreenID, error) { return nil, nil }

func (g *gatedStorage) SaveFavorites([]model.ScreenID) error { return nil }

func (g *gatedStorage) Close() {}

func TestTransitionCounterVisitsDuringReplay(t *testing.T) {
	club := model.ScreenID{Tab: "club", Subscreen: "facilities"}
	wages := model.ScreenID{Tab: "finances", Subscreen: "wages"}

	t.Run("older history is not counted after a live visit", func(t *testing.T) {
		storage := &gatedStorage{
			visits:  []model.Visit{{Screen: wages, Timestamp: time.Now().Add(-48 * time.Hour)}},
			release: make(chan struct{}),
		}

		counter, err := db.NewTransitionCounterFromDB(storage)
		require.NoError(t, err)

		counter.HandleVisitNow(club)
		close(storage.release)
		waitReady(t, counter)

		assert.Empty(t, counter.Suggest(club, 5))
		assert.Empty(t, counter.Suggest(wages, 5))
	})

	t.Run("live visit continues the replayed session", func(t *testing.T) {
		storage := &gatedStorage{
			visits:  []model.Visit{{Screen: squad, Timestamp: time.Now().Add(-time.Minute)}},
			release: make(chan struct{}),
		}

		counter, err := db.NewTransitionCounterFromDB(storage)
		require.NoError(t, err)

		counter.HandleVisitNow(tactics)
		close(storage.release)
		waitReady(t, counter)

		assert.Equal(t, []model.ScreenCount{{Screen: tactics, Count: 1}}, counter.Suggest(squad, 5))
		assert.Empty(t, counter.Suggest(tactics, 5))
	})
}

func TestTransitionCounter(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		storage := memoryStorage(t)

		counter, err := db.NewTransitionCounterFromDB(storage)
		require.NoError(t, err)
		waitReady(t, counter)

		assert.Empty(t, counter.Suggest(squad, 3))
	})

	t.Run("replays history within session gap", func(t *testing.T) {
		storage := memoryStorage(t)
		base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		visits := []struct {
			screen model.ScreenID
			offset time.Duration
		}{
			{squad, 0},
			{tactics, time.Minute},
			{squad, 2 * time.Minute},
			{tactics, 3 * time.Minute},
			{squad, 4 * time.Minute},
			{finances, 5 * time.Minute},
			// new session, no transition from finances
			{squad, 5 * time.Hour},
		}

		for _, v := range visits {
			require.NoError(t, storage.StoreVisitAt(v.screen, base.Add(v.offset)))
		}

		counter, err := db.NewTransitionCounterFromDB(storage)
		require.NoError(t, err)
		waitReady(t, counter)

		assert.Equal(t, []model.ScreenCount{
			{Screen: tactics, Count: 2},
			{Screen: finances, Count: 1},
		}, counter.Suggest(squad, 0))
		assert.Equal(t, []model.ScreenCount{{Screen: tactics, Count: 2}}, counter.Suggest(squad, 1))
		assert.Empty(t, counter.Suggest(finances, 3))
	})

	t.Run("live visits are counted", func(t *testing.T) {
		storage := memoryStorage(t)

		counter, err := db.NewTransitionCounterFromDB(storage)
		require.NoError(t, err)
		waitReady(t, counter)

		counter.HandleVisitNow(squad)
		counter.HandleVisitNow(squad)
		counter.HandleVisitNow(finances)

		assert.Equal(t, []model.ScreenCount{{Screen: finances, Count: 1}}, counter.Suggest(squad, 5))
	})
}

func TestPopularityCounter(t *testing.T) {
	storage := memoryStorage(t)

	require.NoError(t, storage.StoreVisit(squad))
	require.NoError(t, storage.StoreVisit(tactics))
	require.NoError(t, storage.StoreVisit(squad))

	counter, err := db.NewPopularityCounterFromDB(storage)
	require.NoError(t, err)

	counter.HandleVisitNow(finances)
	counter.HandleVisitNow(tactics)

	assert.Equal(t, []model.ScreenCount{
		{Screen: squad, Count: 2},
		{Screen: tactics, Count: 2},
		{Screen: finances, Count: 1},
	}, counter.Top(0))
	assert.Len(t, counter.Top(2), 2)
}
