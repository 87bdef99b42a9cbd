package store

import (
	"context"
	"iter"
	"sync"

	"github.com/msto63/wishbrick/internal/wishlist"
)

// Memory is an in-process ordered store.
type Memory struct {
	mu      sync.RWMutex
	entries wishlist.Collection
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{entries: wishlist.Collection{}}
}

func (m *Memory) Put(ctx context.Context, key string, rec wishlist.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries.Put(key, rec)
	return nil
}

func (m *Memory) Update(ctx context.Context, key string, partial wishlist.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.entries.Index(key)
	if i < 0 {
		return notFound("store.Update", key)
	}
	m.entries[i].Record = m.entries[i].Record.Merge(partial)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.entries.Index(key)
	if i < 0 {
		return notFound("store.Delete", key)
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (wishlist.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entries.Get(key)
	if !ok {
		return wishlist.Record{}, notFound("store.Get", key)
	}
	return rec, nil
}

// All iterates over a copy taken when ranging starts, so the caller may
// mutate the store inside the loop.
func (m *Memory) All(ctx context.Context) iter.Seq2[wishlist.Entry, error] {
	return func(yield func(wishlist.Entry, error) bool) {
		m.mu.RLock()
		entries := m.entries.Clone()
		m.mu.RUnlock()

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				yield(wishlist.Entry{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (m *Memory) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *Memory) Snapshot(ctx context.Context) (wishlist.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(wishlist.Collection{}, m.entries...), nil
}

func (m *Memory) Close() error { return nil }
