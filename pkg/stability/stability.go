// Package stability tracks when a watched folder's content signature last
// changed, answering "which candidates have been stable since before T".
package stability

import (
	"slices"
	"sort"
	"sync"
	"time"
)

// Item associates a candidate key with its signature and the time the
// signature was last seen changing.
type Item struct {
	Key       string
	Signature uint64
	Changed   time.Time
}

// Index keeps items sorted by last-change time, oldest first.
type Index struct {
	mu    sync.RWMutex
	items []Item
}

// New creates an empty index.
func New() *Index {
	return &Index{items: make([]Item, 0)}
}

// Observe records a sighting of key with the given signature at time now.
// The change timestamp only advances when the signature differs from the
// last observation, so a quiet folder keeps ageing.
func (i *Index) Observe(key string, signature uint64, now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx, item := range i.items {
		if item.Key == key {
			if item.Signature != signature {
				i.items[idx].Signature = signature
				i.items[idx].Changed = now
				i.sort()
			}
			return
		}
	}
	i.items = append(i.items, Item{Key: key, Signature: signature, Changed: now})
	i.sort()
}

func (i *Index) sort() {
	sort.Slice(i.items, func(a, b int) bool {
		return i.items[a].Changed.Before(i.items[b].Changed)
	})
}

// StableSince returns the items whose signature has not changed since
// before cutoff. Items stay in the index until removed.
func (i *Index) StableSince(cutoff time.Time) []Item {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// items[0:idx) changed at or before cutoff.
	idx := sort.Search(len(i.items), func(j int) bool {
		return i.items[j].Changed.After(cutoff)
	})

	out := make([]Item, idx)
	copy(out, i.items[:idx])
	return out
}

// Remove drops a candidate, typically after it was submitted.
func (i *Index) Remove(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx, item := range i.items {
		if item.Key == key {
			i.items = slices.Delete(i.items, idx, idx+1)
			break
		}
	}
}

// Len returns the number of tracked candidates.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}
