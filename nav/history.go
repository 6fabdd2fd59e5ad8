package nav

import (
	"sync"

	"github.com/dasdy/gridfit/model"
)

const DefaultHistoryLimit = 50

// History is a bounded in-memory stack of visited screens.
type History struct {
	entries []model.ScreenID
	limit   int
	lock    sync.Mutex
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &History{
		entries: make([]model.ScreenID, 0, limit),
		limit:   limit,
		lock:    sync.Mutex{},
	}
}

// Push records a visit. Reloading the current screen is not a new entry.
func (h *History) Push(screen model.ScreenID) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == screen {
		return
	}

	h.entries = append(h.entries, screen)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Back drops the current screen and returns the one before it.
func (h *History) Back() (model.ScreenID, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if len(h.entries) < 2 {
		return model.ScreenID{}, false
	}

	h.entries = h.entries[:len(h.entries)-1]

	return h.entries[len(h.entries)-1], true
}

func (h *History) Current() (model.ScreenID, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if len(h.entries) == 0 {
		return model.ScreenID{}, false
	}

	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy, oldest first.
func (h *History) Entries() []model.ScreenID {
	h.lock.Lock()
	defer h.lock.Unlock()

	result := make([]model.ScreenID, len(h.entries))
	copy(result, h.entries)

	return result
}

func (h *History) Len() int {
	h.lock.Lock()
	defer h.lock.Unlock()

	return len(h.entries)
}
