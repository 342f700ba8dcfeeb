package guestbook

import (
	"context"
	"errors"
	"fmt"
	"guestbook/internal/core/domain"
)

type guestbookService struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &guestbookService{
		repo: repo,
	}
}

var _ Service = (*guestbookService)(nil)

func (s *guestbookService) ListAll(ctx context.Context) ([]domain.Entry, error) {
	return s.repo.FindAll(ctx)
}

func (s *guestbookService) GetByID(ctx context.Context, id int64) (domain.Entry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *guestbookService) GetByUser(ctx context.Context, user string) ([]domain.Entry, error) {
	return s.repo.FindByUser(ctx, user)
}

func (s *guestbookService) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, err.Error())
	}

	// a client-supplied id is ignored on create; the store is the only
	// party that assigns ids
	entry.ID = nil

	created, err := s.repo.Save(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("Create: could not save to repository: %w", err)
	}

	return created, nil
}

func (s *guestbookService) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if !entry.HasID() {
		return domain.Entry{}, ErrMissingID
	}

	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, err.Error())
	}

	// update never inserts: an unknown id is a NotFound, not a fresh
	// record under a client-chosen id
	if _, err := s.repo.FindByID(ctx, *entry.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Entry{}, fmt.Errorf("%w: id %d", ErrNotFound, *entry.ID)
		}
		return domain.Entry{}, fmt.Errorf("Update: could not check entry: %w", err)
	}

	updated, err := s.repo.Save(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("Update: could not save to repository: %w", err)
	}

	return updated, nil
}

func (s *guestbookService) DeleteByID(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}
