package db

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dasdy/gridfit/model"
	"github.com/schollz/progressbar/v3"
)

// DefaultSessionGap separates two browsing sessions. Visits further apart are
// not counted as a transition.
const DefaultSessionGap = 30 * time.Minute

// TransitionCounter counts which screen is opened right after which.
type TransitionCounter struct {
	counts     map[model.ScreenID]map[model.ScreenID]int
	last       *model.Visit
	sessionGap time.Duration
	stateLock  sync.RWMutex
	ready      chan struct{}
	// live visits seen while the history is still being replayed
	pending    []model.Visit
	replaying  bool
}

func newTransitionCounter(sessionGap time.Duration) *TransitionCounter {
	return &TransitionCounter{
		counts:     make(map[model.ScreenID]map[model.ScreenID]int),
		sessionGap: sessionGap,
		stateLock:  sync.RWMutex{},
		ready:      make(chan struct{}),
	}
}

// NewTransitionCounterFromDB replays the visit history in the background.
// Ready is closed once the replay is done.
func NewTransitionCounterFromDB(storage Storage) (*TransitionCounter, error) {
	tracker := newTransitionCounter(DefaultSessionGap)

	iterator, err := storage.AllVisits()
	if err != nil {
		return nil, fmt.Errorf("could not read visit history: %w", err)
	}

	tracker.replaying = true

	go func() {
		defer close(tracker.ready)

		tracker.initCounter(iterator)
		tracker.flushPending()
	}()

	return tracker, nil
}

func (c *TransitionCounter) Ready() <-chan struct{} {
	return c.ready
}

// HandleVisitNow counts a live visit. Visits arriving before the history
// replay is done are applied after it.
func (c *TransitionCounter) HandleVisitNow(screen model.ScreenID) {
	visit := model.Visit{Screen: screen, Timestamp: time.Now()}

	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	if c.replaying {
		c.pending = append(c.pending, visit)

		return
	}

	c.countLocked(visit)
}

// Suggest returns up to limit screens most often opened after from.
func (c *TransitionCounter) Suggest(from model.ScreenID, limit int) []model.ScreenCount {
	c.stateLock.RLock()
	defer c.stateLock.RUnlock()

	next := c.counts[from]
	result := make([]model.ScreenCount, 0, len(next))

	for screen, count := range next {
		result = append(result, model.ScreenCount{Screen: screen, Count: count})
	}

	sortCounts(result)

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result
}

func (c *TransitionCounter) handleVisit(visit model.Visit) {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	c.countLocked(visit)
}

func (c *TransitionCounter) flushPending() {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	for _, visit := range c.pending {
		c.countLocked(visit)
	}

	c.pending = nil
	c.replaying = false
}

func (c *TransitionCounter) countLocked(visit model.Visit) {
	if c.last != nil && visit.Timestamp.Before(c.last.Timestamp) {
		slog.WarnContext(logCtx, "Ignoring out of order visit",
			"screen", visit.Screen.String(), "at", visit.Timestamp, "last", c.last.Timestamp)

		return
	}

	if c.last != nil && c.last.Screen != visit.Screen && visit.Timestamp.Sub(c.last.Timestamp) <= c.sessionGap {
		from := c.last.Screen
		if _, exists := c.counts[from]; !exists {
			c.counts[from] = make(map[model.ScreenID]int)
		}

		c.counts[from][visit.Screen]++
	}

	c.last = &visit
}

func (c *TransitionCounter) initCounter(items iter.Seq[model.Visit]) {
	bar := progressbar.Default(-1, "Scanning history...")
	for item := range items {
		err := bar.Add(1)
		if err != nil {
			slog.ErrorContext(logCtx, "could not update progress bar", "error", err)
		}

		c.handleVisit(item)
	}

	err := bar.Finish()
	if err != nil {
		slog.ErrorContext(logCtx, "could not finish progress bar", "error", err)
	}
}

func sortCounts(result []model.ScreenCount) {
	slices.SortFunc(result, func(a, b model.ScreenCount) int {
		return cmp.Or(
			-cmp.Compare(a.Count, b.Count),
			cmp.Compare(a.Screen.String(), b.Screen.String()),
		)
	})
}
