package filestore

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"encoding/json/jsontext"
	jsonv2 "encoding/json/v2"

	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

const defaultFilePermissions = os.FileMode(0644)

// FileStore is the durable record store backed by a single JSON file:
// a plain array of entries, human-editable, rewritten in full on every
// mutation. An in-memory cache mirrors the file; Watch hot-reloads the
// cache when the file is edited on disk.
type FileStore struct {
	filename string
	mu       sync.RWMutex
	entries  []domain.Entry
	index    map[int64]int // id -> position in entries
	nextID   int64
}

var _ guestbook.Store = (*FileStore)(nil)

func New(filename string) (*FileStore, error) {
	s := &FileStore{
		filename: filename,
		index:    make(map[int64]int),
		nextID:   1,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("%w: %v", guestbook.ErrStoreUnavailable, err)
	}

	return s, nil
}

// load replaces the in-memory cache with the file contents. Caller
// must hold the write lock. A missing or empty file is a valid empty
// store.
func (s *FileStore) load() error {
	bytes, err := os.ReadFile(s.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if len(bytes) == 0 {
		return nil
	}

	var loaded []domain.Entry
	if err := jsonv2.Unmarshal(bytes, &loaded); err != nil {
		return fmt.Errorf("could not parse %s: %w", s.filename, err)
	}

	entries := make([]domain.Entry, 0, len(loaded))
	index := make(map[int64]int, len(loaded))
	nextID := int64(1)

	for i, e := range loaded {
		if !e.HasID() {
			return fmt.Errorf("entry at index %d in %s has no id", i, s.filename)
		}

		if _, dup := index[*e.ID]; dup {
			return fmt.Errorf("duplicate id %d in %s", *e.ID, s.filename)
		}

		index[*e.ID] = len(entries)
		entries = append(entries, e)

		if *e.ID >= nextID {
			nextID = *e.ID + 1
		}
	}

	s.entries = entries
	s.index = index
	if nextID > s.nextID {
		s.nextID = nextID
	}

	return nil
}

// persist writes the whole cache back to the JSON file. Caller must
// hold the write lock.
func (s *FileStore) persist() error {
	f, err := os.OpenFile(s.filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := jsonv2.JoinOptions(jsontext.Multiline(true), jsontext.WithIndent("  "))

	return jsonv2.MarshalWrite(f, s.entries, opts)
}

func (s *FileStore) Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := entry.Clone()
	stored.SetID(s.nextID)

	s.entries = append(s.entries, stored)
	s.index[*stored.ID] = len(s.entries) - 1

	if err := s.persist(); err != nil {
		// revert the change if saving to file fails
		s.entries = s.entries[:len(s.entries)-1]
		delete(s.index, *stored.ID)

		log.Printf("ERROR: Failed to persist data to %s: %v", s.filename, err)
		return domain.Entry{}, err
	}

	s.nextID++

	return stored.Clone(), nil
}

func (s *FileStore) Upsert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if !entry.HasID() {
		return domain.Entry{}, fmt.Errorf("%w: upsert requires an id", guestbook.ErrInvalidEntry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := entry.Clone()
	id := *stored.ID

	if pos, ok := s.index[id]; ok {
		previous := s.entries[pos]
		s.entries[pos] = stored

		if err := s.persist(); err != nil {
			s.entries[pos] = previous

			log.Printf("ERROR: Failed to persist data to %s: %v", s.filename, err)
			return domain.Entry{}, err
		}

		return stored.Clone(), nil
	}

	s.entries = append(s.entries, stored)
	s.index[id] = len(s.entries) - 1

	if err := s.persist(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		delete(s.index, id)

		log.Printf("ERROR: Failed to persist data to %s: %v", s.filename, err)
		return domain.Entry{}, err
	}

	// keep the counter ahead of externally supplied ids so a later
	// insert cannot collide
	if id >= s.nextID {
		s.nextID = id + 1
	}

	return stored.Clone(), nil
}

func (s *FileStore) Get(ctx context.Context, id int64) (domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Entry{}, guestbook.ErrNotFound
	}

	return s.entries[pos].Clone(), nil
}

func (s *FileStore) List(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e.Clone())
	}

	return result, nil
}

func (s *FileStore) ListByUser(ctx context.Context, user string) ([]domain.Entry, error) {
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

func (s *FileStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return guestbook.ErrNotFound
	}

	removed := s.entries[pos]
	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, id)

	for i := pos; i < len(s.entries); i++ {
		s.index[*s.entries[i].ID] = i
	}

	if err := s.persist(); err != nil {
		// put the entry back where it was
		s.entries = append(s.entries[:pos], append([]domain.Entry{removed}, s.entries[pos:]...)...)
		for i := pos; i < len(s.entries); i++ {
			s.index[*s.entries[i].ID] = i
		}

		log.Printf("ERROR: Failed to persist data to %s: %v", s.filename, err)
		return err
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// reload re-reads the data file from scratch, replacing the cache.
// Called by the watcher when the file changes on disk.
func (s *FileStore) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.index = make(map[int64]int)

	return s.load()
}
