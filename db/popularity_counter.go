package db

import (
	"fmt"
	"iter"
	"sync"

	"github.com/dasdy/gridfit/model"
)

// PopularityCounter counts visits per screen.
type PopularityCounter struct {
	counts    map[model.ScreenID]int
	stateLock sync.RWMutex
}

func newPopularityCounter() *PopularityCounter {
	return &PopularityCounter{
		counts:    make(map[model.ScreenID]int),
		stateLock: sync.RWMutex{},
	}
}

func NewPopularityCounterFromDB(storage Storage) (*PopularityCounter, error) {
	tracker := newPopularityCounter()

	iterator, err := storage.AllVisits()
	if err != nil {
		return nil, fmt.Errorf("could not read visit history: %w", err)
	}

	tracker.initCounter(iterator)

	return tracker, nil
}

func (pc *PopularityCounter) HandleVisitNow(screen model.ScreenID) {
	pc.stateLock.Lock()
	defer pc.stateLock.Unlock()

	pc.counts[screen]++
}

// Top returns up to limit screens ordered by visit count.
func (pc *PopularityCounter) Top(limit int) []model.ScreenCount {
	pc.stateLock.RLock()
	defer pc.stateLock.RUnlock()

	result := make([]model.ScreenCount, 0, len(pc.counts))
	for screen, count := range pc.counts {
		result = append(result, model.ScreenCount{Screen: screen, Count: count})
	}

	sortCounts(result)

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result
}

func (pc *PopularityCounter) initCounter(items iter.Seq[model.Visit]) {
	pc.stateLock.Lock()
	defer pc.stateLock.Unlock()

	for item := range items {
		pc.counts[item.Screen]++
	}
}
