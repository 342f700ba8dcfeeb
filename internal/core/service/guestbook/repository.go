package guestbook

import (
	"context"
	"guestbook/internal/core/domain"
)

// Repository exposes the named queries and mutations the service works
// in terms of. Each one maps directly onto a Store operation; the
// repository adds no behaviour, it only keeps the service decoupled
// from the storage technology behind the Store port.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	return r.store.List(ctx)
}

func (r *Repository) FindByID(ctx context.Context, id int64) (domain.Entry, error) {
	return r.store.Get(ctx, id)
}

func (r *Repository) FindByUser(ctx context.Context, user string) ([]domain.Entry, error) {
	return r.store.ListByUser(ctx, user)
}

// Save delegates to Insert when the entry has no id yet, and to Upsert
// when it does.
func (r *Repository) Save(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if !entry.HasID() {
		return r.store.Insert(ctx, entry)
	}

	return r.store.Upsert(ctx, entry)
}

func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id)
}
