package vernacular

import (
	"context"
	"log/slog"
	"sync"
)

// Memo is a Resolver that consults a Store before calling a FetchFunc,
// and writes every fetched result to the Store right away.
type Memo struct {
	keyFn func(string) string
	fetch FetchFunc
	store Store
}

// Memoize wraps fetch with a persistent store. The keyFn converts a name
// into a store key, nil keeps names as they are.
func Memoize(keyFn func(string) string, fetch FetchFunc, store Store) *Memo {
	if keyFn == nil {
		keyFn = func(s string) string { return s }
	}
	return &Memo{keyFn: keyFn, fetch: fetch, store: store}
}

// Resolve returns the cached common name if the name was looked up
// before, even if no common name was found then. Otherwise it fetches
// the name and stores the result. Fetch failures count as "no common
// name" and are stored too.
func (m *Memo) Resolve(ctx context.Context, name string) (string, bool) {
	key := m.keyFn(name)
	e, ok, err := m.store.Get(key)
	if err != nil {
		slog.Warn("Cannot read vernacular cache", "name", name, "error", err)
	}
	if ok {
		return e.Name, e.Found
	}

	res, found, err := m.fetch(ctx, name)
	if err != nil && ctx.Err() != nil {
		// interrupted lookups say nothing about the name
		return "", false
	}
	if err != nil {
		slog.Warn("Cannot fetch vernacular name", "name", name, "error", err)
		res, found = "", false
	}
	e = Entry{Name: res, Found: found}
	if !found {
		e.Name = ""
	}

	if err = m.store.Set(key, e); err != nil {
		slog.Warn("Cannot write vernacular cache", "name", name, "error", err)
	}
	return e.Name, e.Found
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.Mutex
	data map[string]Entry
}

// NewMemStore creates an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]Entry)}
}

// Get implements Store.
func (s *MemStore) Get(key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	return e, ok, nil
}

// Set implements Store.
func (s *MemStore) Set(key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = e
	return nil
}

// Len returns the number of stored entries.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
