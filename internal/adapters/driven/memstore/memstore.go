package memstore

import (
	"context"
	"fmt"
	"sync"

	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

// MemStore is the ephemeral record store: everything lives in process
// memory and is gone on restart. Entries are held in insertion order
// with an id index alongside; nextID only ever moves forward so a
// deleted id is never handed out again.
type MemStore struct {
	mu      sync.RWMutex
	entries []domain.Entry
	index   map[int64]int // id -> position in entries
	nextID  int64
}

var _ guestbook.Store = (*MemStore)(nil)

func New() *MemStore {
	return &MemStore{
		index:  make(map[int64]int),
		nextID: 1,
	}
}

func (s *MemStore) Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := entry.Clone()
	stored.SetID(s.nextID)
	s.nextID++

	s.index[*stored.ID] = len(s.entries)
	s.entries = append(s.entries, stored)

	return stored.Clone(), nil
}

func (s *MemStore) Upsert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if !entry.HasID() {
		return domain.Entry{}, fmt.Errorf("%w: upsert requires an id", guestbook.ErrInvalidEntry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := entry.Clone()
	id := *stored.ID

	if pos, ok := s.index[id]; ok {
		s.entries[pos] = stored
		return stored.Clone(), nil
	}

	s.index[id] = len(s.entries)
	s.entries = append(s.entries, stored)

	// keep the counter ahead of externally supplied ids so a later
	// insert cannot collide
	if id >= s.nextID {
		s.nextID = id + 1
	}

	return stored.Clone(), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Entry{}, guestbook.ErrNotFound
	}

	return s.entries[pos].Clone(), nil
}

func (s *MemStore) List(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e.Clone())
	}

	return result, nil
}

func (s *MemStore) ListByUser(ctx context.Context, user string) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Entry, 0)
	for _, e := range s.entries {
		if e.User == user {
			result = append(result, e.Clone())
		}
	}

	return result, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return guestbook.ErrNotFound
	}

	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, id)

	// positions after the removed entry have shifted down by one
	for i := pos; i < len(s.entries); i++ {
		s.index[*s.entries[i].ID] = i
	}

	return nil
}

func (s *MemStore) Close() error {
	return nil
}
