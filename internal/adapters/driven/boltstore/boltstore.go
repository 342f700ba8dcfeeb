package boltstore

import (
	"context"
	"encoding/binary"
	"fmt"

	jsonv2 "encoding/json/v2"

	"github.com/boltdb/bolt"

	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

var bucketName = []byte("entries")

// BoltStore is the durable record store backed by a BoltDB file. Ids
// come from the bucket's sequence, so they are monotonic for the life
// of the database file and survive restarts; keys are big-endian
// encoded ids, which makes bucket iteration order insertion order.
type BoltStore struct {
	db *bolt.DB
}

var _ guestbook.Store = (*BoltStore)(nil)

func New(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", guestbook.ErrStoreUnavailable, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", guestbook.ErrStoreUnavailable, err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func idToKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func (s *BoltStore) Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	stored := entry.Clone()

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		stored.SetID(int64(seq))

		value, err := jsonv2.Marshal(stored)
		if err != nil {
			return err
		}

		return bucket.Put(idToKey(*stored.ID), value)
	})
	if err != nil {
		return domain.Entry{}, err
	}

	return stored, nil
}

func (s *BoltStore) Upsert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if !entry.HasID() {
		return domain.Entry{}, fmt.Errorf("%w: upsert requires an id", guestbook.ErrInvalidEntry)
	}

	stored := entry.Clone()
	id := *stored.ID

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		value, err := jsonv2.Marshal(stored)
		if err != nil {
			return err
		}

		if err := bucket.Put(idToKey(id), value); err != nil {
			return err
		}

		// keep the sequence ahead of externally supplied ids so a
		// later insert cannot collide
		if uint64(id) > bucket.Sequence() {
			return bucket.SetSequence(uint64(id))
		}

		return nil
	})
	if err != nil {
		return domain.Entry{}, err
	}

	return stored, nil
}

func (s *BoltStore) Get(ctx context.Context, id int64) (domain.Entry, error) {
	var entry domain.Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketName).Get(idToKey(id))
		if value == nil {
			return guestbook.ErrNotFound
		}

		return jsonv2.Unmarshal(value, &entry)
	})
	if err != nil {
		return domain.Entry{}, err
	}

	return entry, nil
}

func (s *BoltStore) List(ctx context.Context) ([]domain.Entry, error) {
	result := make([]domain.Entry, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(key, value []byte) error {
			var entry domain.Entry
			if err := jsonv2.Unmarshal(value, &entry); err != nil {
				return err
			}

			result = append(result, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *BoltStore) ListByUser(ctx context.Context, user string) ([]domain.Entry, error) {
	result := make([]domain.Entry, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(key, value []byte) error {
			var entry domain.Entry
			if err := jsonv2.Unmarshal(value, &entry); err != nil {
				return err
			}

			if entry.User == user {
				result = append(result, entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *BoltStore) Delete(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		key := idToKey(id)
		if bucket.Get(key) == nil {
			return guestbook.ErrNotFound
		}

		return bucket.Delete(key)
	})
}
