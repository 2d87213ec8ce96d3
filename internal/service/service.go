package service

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/bookmarks-api/internal/models"
	"github.com/vadimbarashkov/bookmarks-api/pkg/sanitize"
)

// BookmarkRepository defines the interface for working with bookmarks at the
// business logic layer.
type BookmarkRepository interface {
	// List returns all stored bookmarks in insertion order.
	List(ctx context.Context) ([]models.Bookmark, error)

	// GetByID retrieves a bookmark by its id.
	// Returns database.ErrBookmarkNotFound when the id doesn't exist.
	GetByID(ctx context.Context, id int64) (*models.Bookmark, error)

	// Create inserts a new bookmark and returns the persisted record,
	// including the storage-generated id.
	Create(ctx context.Context, b models.Bookmark) (*models.Bookmark, error)

	// Update applies only the supplied patch fields to the matching record.
	// Returns database.ErrBookmarkNotFound when the id doesn't exist.
	Update(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error)

	// Delete removes a bookmark by its id.
	// Returns database.ErrBookmarkNotFound when the id doesn't exist.
	Delete(ctx context.Context, id int64) error
}

// BookmarkService orchestrates bookmark operations. Free-text fields are
// passed through the HTML escaping transform on ingest; serialization applies
// the same transform again on egress, so data written before the policy
// existed is still rendered safely.
type BookmarkService struct {
	repo BookmarkRepository
}

// NewBookmarkService creates a new instance of BookmarkService with the provided repository.
func NewBookmarkService(repo BookmarkRepository) *BookmarkService {
	return &BookmarkService{
		repo: repo,
	}
}

// ListBookmarks returns all stored bookmarks.
func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	const op = "service.BookmarkService.ListBookmarks"

	bookmarks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list bookmarks: %w", op, err)
	}

	return bookmarks, nil
}

// GetBookmark retrieves a single bookmark by id.
func (s *BookmarkService) GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error) {
	const op = "service.BookmarkService.GetBookmark"

	bookmark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get bookmark: %w", op, err)
	}

	return bookmark, nil
}

// CreateBookmark sanitizes the free-text fields and stores a new bookmark.
func (s *BookmarkService) CreateBookmark(ctx context.Context, b models.Bookmark) (*models.Bookmark, error) {
	const op = "service.BookmarkService.CreateBookmark"

	b.Title = sanitize.HTML(b.Title)
	b.Description = sanitize.HTML(b.Description)

	bookmark, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create bookmark: %w", op, err)
	}

	return bookmark, nil
}

// UpdateBookmark applies a partial update. Supplied free-text fields pass
// through the same escaping transform as on create.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error) {
	const op = "service.BookmarkService.UpdateBookmark"

	if patch.Title != nil {
		title := sanitize.HTML(*patch.Title)
		patch.Title = &title
	}
	if patch.Description != nil {
		description := sanitize.HTML(*patch.Description)
		patch.Description = &description
	}

	bookmark, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update bookmark: %w", op, err)
	}

	return bookmark, nil
}

// DeleteBookmark removes a bookmark by id.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, id int64) error {
	const op = "service.BookmarkService.DeleteBookmark"

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete bookmark: %w", op, err)
	}

	return nil
}
