package guestbook

import (
	"context"
	"guestbook/internal/core/domain"
)

// Service is the driving port between the HTTP adapter and the
// repository. It carries no state of its own; it is the seam where
// business rules (validation today, more later) live.
type Service interface {
	// Queries
	ListAll(ctx context.Context) ([]domain.Entry, error)
	GetByID(ctx context.Context, id int64) (domain.Entry, error)
	GetByUser(ctx context.Context, user string) ([]domain.Entry, error)

	// Commands
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	Update(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Store is the driven port for the record store. Implementations own
// key assignment: ids are monotonic and never reused within a store
// lifetime, even when Upsert introduces an id the store has not seen.
// Swapping implementations must not change any caller.
type Store interface {
	// Insert assigns the next id to the entry and persists it.
	Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// Upsert persists an entry under its existing id: a replace when
	// the id is present, an insert under that exact id when it is not.
	Upsert(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// Get returns the entry with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (domain.Entry, error)

	// List returns every entry in insertion order.
	List(ctx context.Context) ([]domain.Entry, error)

	// ListByUser returns the entries whose user equals the argument
	// exactly, in insertion order. An empty result is not an error.
	ListByUser(ctx context.Context, user string) ([]domain.Entry, error)

	// Delete removes the entry with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// Close releases the backing medium.
	Close() error
}
