// internal/store/feed.go

package store

import (
	"log/slog"
	"sync"
)

// Snapshot carries the entire current collection of one kind for one user.
// Items is the typed slice ([]models.Task and friends); subscribers receive
// the whole collection on every change, never a delta.
type Snapshot struct {
	Kind  Kind `json:"kind"`
	Items any  `json:"items"`
}

// Feed fans whole-collection snapshots out to live subscribers, keyed by
// user. Both persistence tracks publish through it after every mutation, so a
// connected client converges no matter which backend holds the data.
type Feed struct {
	mu   sync.Mutex
	subs map[string]map[chan Snapshot]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[chan Snapshot]struct{})}
}

// Subscribe registers a listener for one user's snapshots. The returned
// cancel must be called exactly once; afterwards the channel is closed.
func (f *Feed) Subscribe(userID string) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 16)

	f.mu.Lock()
	set, ok := f.subs[userID]
	if !ok {
		set = make(map[chan Snapshot]struct{})
		f.subs[userID] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subs[userID]; ok {
			if _, live := set[ch]; live {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(f.subs, userID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// ActiveUsers lists the users that currently hold at least one subscription.
func (f *Feed) ActiveUsers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]string, 0, len(f.subs))
	for userID := range f.subs {
		users = append(users, userID)
	}
	return users
}

// Publish delivers a snapshot to every subscriber of the user. A subscriber
// that has fallen 16 snapshots behind is skipped rather than blocking the
// mutation path; it catches up on the next publish.
func (f *Feed) Publish(userID string, snap Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[userID] {
		select {
		case ch <- snap:
		default:
			slog.Warn("snapshot subscriber too slow, dropping update", "user_id", userID, "kind", snap.Kind)
		}
	}
}
