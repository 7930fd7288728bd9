// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"log/slog"
	"sync"

	"github.com/danielhkuo/livepoll/models"
)

// Hub fans poll snapshots out to subscribers. Each poll has its own
// subscriber set; polls never contend with each other beyond the short
// registry lock.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan<- *models.Poll]struct{}
}

func New() *Hub {
	return &Hub{
		subs: make(map[string]map[chan<- *models.Poll]struct{}),
	}
}

// Subscribe registers c to receive future snapshots of the poll. Past
// snapshots are not replayed; a subscriber fetches current state
// separately. The channel should be buffered: delivery is non-blocking
// and a full channel loses the update.
func (h *Hub) Subscribe(pollID string, c chan<- *models.Poll) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[pollID]
	if !ok {
		set = make(map[chan<- *models.Poll]struct{})
		h.subs[pollID] = set
	}
	set[c] = struct{}{}
}

// Unsubscribe removes the registration. No-op if already removed. The
// hub never closes subscriber channels; the subscriber owns them.
func (h *Hub) Unsubscribe(pollID string, c chan<- *models.Poll) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[pollID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, pollID)
	}
}

// Publish delivers the snapshot to every current subscriber of the
// poll. A subscriber that cannot keep up is skipped so it never delays
// the others; the skip is logged and nothing surfaces to the caller.
// Callers must treat published snapshots as immutable.
func (h *Hub) Publish(pollID string, snapshot *models.Poll) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.subs[pollID] {
		select {
		case c <- snapshot:
		default:
			slog.Warn("dropping poll update for slow subscriber", "poll_id", pollID)
		}
	}
}

// SubscriberCount reports how many subscribers a poll currently has.
func (h *Hub) SubscriberCount(pollID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[pollID])
}
