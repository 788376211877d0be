package docstore

import (
	"context"
	"sync"
)

// watcherBuffer is the snapshot channel capacity per watcher. Snapshots
// carry full collection state, so when a slow consumer falls behind the
// oldest pending snapshot is dropped rather than blocking writers.
const watcherBuffer = 16

type watcher struct {
	ch   chan []Document
	once sync.Once
}

// hub tracks collection watchers and serializes writes per collection so
// snapshots are delivered in commit order.
type hub struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	watchers map[string][]*watcher
}

func newHub() *hub {
	return &hub{
		locks:    make(map[string]*sync.Mutex),
		watchers: make(map[string][]*watcher),
	}
}

// lock acquires the write lock for a collection and returns its unlock.
func (h *hub) lock(collection string) func() {
	h.mu.Lock()
	l, ok := h.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		h.locks[collection] = l
	}
	h.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (h *hub) hasWatchers(collection string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[collection]) > 0
}

// publish sends a snapshot to every watcher of the collection. A full
// watcher channel sheds its oldest snapshot first; the latest snapshot is
// never dropped.
func (h *hub) publish(collection string, docs []Document) {
	h.mu.Lock()
	subs := make([]*watcher, len(h.watchers[collection]))
	copy(subs, h.watchers[collection])
	h.mu.Unlock()

	for _, w := range subs {
		for {
			select {
			case w.ch <- docs:
			default:
				select {
				case <-w.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

func (h *hub) add(collection string, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.watchers[collection] = append(h.watchers[collection], w)
}

func (h *hub) remove(collection string, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.watchers[collection]
	for i, s := range subs {
		if s == w {
			h.watchers[collection] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Watch registers a standing subscription on a collection. The returned
// channel fires once immediately with the current collection state, then
// again after every committed insert, patch, or delete, in commit order.
// The cancel func stops delivery and closes the channel; calling it more
// than once is safe.
func (db *DB) Watch(ctx context.Context, collection string) (<-chan []Document, func(), error) {
	op := "watch " + collection
	if err := checkCollection(op, collection); err != nil {
		return nil, nil, err
	}

	w := &watcher{ch: make(chan []Document, watcherBuffer)}

	// Register and take the initial snapshot under the collection lock so
	// no commit can slip between the two.
	unlock := db.hub.lock(collection)
	docs, err := db.List(ctx, collection, ListOptions{})
	if err != nil {
		unlock()
		return nil, nil, err
	}
	db.hub.add(collection, w)
	w.ch <- docs
	unlock()

	// Removal and close happen under the collection lock: publish only runs
	// while that lock is held, so a snapshot can never be sent on a closed
	// channel.
	cancel := func() {
		w.once.Do(func() {
			unlock := db.hub.lock(collection)
			db.hub.remove(collection, w)
			close(w.ch)
			unlock()
		})
	}
	return w.ch, cancel, nil
}
