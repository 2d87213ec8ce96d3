// Package memory provides an in-memory bookmark store interchangeable with
// the relational adapter, for tests and single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vadimbarashkov/bookmarks-api/internal/database"
	"github.com/vadimbarashkov/bookmarks-api/internal/models"
)

// BookmarkRepository keeps bookmarks in a mutex-guarded map, preserving
// insertion order the way a serial-keyed table would.
type BookmarkRepository struct {
	mu        sync.RWMutex
	bookmarks map[int64]models.Bookmark
	order     []int64
	nextID    int64
}

func NewBookmarkRepository() *BookmarkRepository {
	return &BookmarkRepository{
		bookmarks: make(map[int64]models.Bookmark),
		nextID:    1,
	}
}

func (r *BookmarkRepository) List(_ context.Context) ([]models.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookmarks := make([]models.Bookmark, 0, len(r.order))
	for _, id := range r.order {
		bookmarks = append(bookmarks, r.bookmarks[id])
	}

	return bookmarks, nil
}

func (r *BookmarkRepository) GetByID(_ context.Context, id int64) (*models.Bookmark, error) {
	const op = "database.memory.BookmarkRepository.GetByID"

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookmarks[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
	}

	return &b, nil
}

func (r *BookmarkRepository) Create(_ context.Context, b models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++

	r.bookmarks[b.ID] = b
	r.order = append(r.order, b.ID)

	return &b, nil
}

func (r *BookmarkRepository) Update(_ context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error) {
	const op = "database.memory.BookmarkRepository.Update"

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookmarks[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
	}

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.URL != nil {
		b.URL = *patch.URL
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Rating != nil {
		b.Rating = *patch.Rating
	}

	r.bookmarks[id] = b

	return &b, nil
}

func (r *BookmarkRepository) Delete(_ context.Context, id int64) error {
	const op = "database.memory.BookmarkRepository.Delete"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[id]; !ok {
		return fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
	}

	delete(r.bookmarks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
