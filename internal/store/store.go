// Package store holds the in-memory collection of each entity type, loaded
// from and written through a persistence table.
//
// Mutations are confirm-then-apply: the collection changes only after the
// table accepted the write.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrPersistence = errors.New("persistence failure")
	// ErrStaleFetch reports a load whose result was dropped because the
	// collection changed while it was in flight.
	ErrStaleFetch = errors.New("stale fetch discarded")
	ErrIDChanged  = errors.New("entity id cannot change")
)

// Codec converts between an entity and its stored row.
type Codec[E, R any] struct {
	ToRow   func(E) R
	FromRow func(R) E
	ID      func(E) string
	Clone   func(E) E
	Columns func(R) map[string]any
}

// Store is safe for concurrent use. Table calls run outside the lock.
type Store[E, R any] struct {
	name    string
	table   persistence.Table[R]
	codec   Codec[E, R]
	orderBy string

	mu     sync.RWMutex
	items  []E
	gen    uint64
	loaded bool
}

// New builds an empty store. orderBy is passed to ListAll; a "desc" order
// makes Add prepend.
func New[E, R any](name string, table persistence.Table[R], codec Codec[E, R], orderBy string) *Store[E, R] {
	return &Store[E, R]{name: name, table: table, codec: codec, orderBy: orderBy}
}

func (s *Store[E, R]) Name() string { return s.name }

// Load replaces the collection with the table's content.
func (s *Store[E, R]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	rows, err := s.table.ListAll(ctx, s.orderBy)
	if err != nil {
		return s.fail("load", err)
	}
	items := make([]E, 0, len(rows))
	for _, r := range rows {
		items = append(items, s.codec.FromRow(r))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		logger.Debug("dropping stale load", "store", s.name, "gen", gen, "current", s.gen)
		return ErrStaleFetch
	}
	s.items = items
	s.loaded = true
	logger.Debug("store loaded", "store", s.name, "count", len(items))
	return nil
}

func (s *Store[E, R]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a copy of the collection in display order.
func (s *Store[E, R]) Snapshot() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, len(s.items))
	for i, e := range s.items {
		out[i] = s.codec.Clone(e)
	}
	return out
}

func (s *Store[E, R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[E, R]) Get(id string) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		var zero E
		return zero, fmt.Errorf("%s %s: %w", s.name, id, ErrNotFound)
	}
	return s.codec.Clone(s.items[i]), nil
}

// Add inserts e and returns the entity as stored.
func (s *Store[E, R]) Add(ctx context.Context, e E) (E, error) {
	row, err := s.table.Insert(ctx, s.codec.ToRow(e))
	if err != nil {
		var zero E
		return zero, s.fail("insert", err)
	}
	created := s.codec.FromRow(row)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A load that ran after the insert committed may already hold the row.
	if i := s.index(s.codec.ID(created)); i >= 0 {
		s.items[i] = created
	} else if strings.HasSuffix(strings.ToLower(s.orderBy), " desc") {
		s.items = slices.Insert(s.items, 0, created)
	} else {
		s.items = append(s.items, created)
	}
	s.gen++
	return s.codec.Clone(created), nil
}

// Update applies mutate to a copy of the entity, writes every column and
// replaces the entity once the table confirms. An error from mutate aborts
// without touching the table.
func (s *Store[E, R]) Update(ctx context.Context, id string, mutate func(*E) error) (E, error) {
	var zero E
	current, err := s.Get(id)
	if err != nil {
		return zero, err
	}
	if err := mutate(&current); err != nil {
		return zero, err
	}
	if s.codec.ID(current) != id {
		return zero, ErrIDChanged
	}

	row, err := s.table.Update(ctx, id, s.codec.Columns(s.codec.ToRow(current)))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			s.forget(id)
			return zero, fmt.Errorf("%s %s: %w", s.name, id, ErrNotFound)
		}
		return zero, s.fail("update", err)
	}
	updated := s.codec.FromRow(row)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		s.items[i] = updated
	}
	s.gen++
	return s.codec.Clone(updated), nil
}

func (s *Store[E, R]) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.table.Delete(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			s.forget(id)
			return fmt.Errorf("%s %s: %w", s.name, id, ErrNotFound)
		}
		return s.fail("delete", err)
	}
	s.forget(id)
	return nil
}

// forget drops id from the collection, used once the table says it is gone.
func (s *Store[E, R]) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		s.gen++
	}
}

// index must be called with mu held.
func (s *Store[E, R]) index(id string) int {
	return slices.IndexFunc(s.items, func(e E) bool { return s.codec.ID(e) == id })
}

func (s *Store[E, R]) fail(op string, err error) error {
	logger.Error("store operation failed", "store", s.name, "op", op, "error", err)
	return fmt.Errorf("%w: %s %s: %w", ErrPersistence, op, s.name, err)
}
