package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/bookmarks-api/internal/database"
	"github.com/vadimbarashkov/bookmarks-api/internal/models"
)

type bookmarkRecord struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	URL         string         `db:"url"`
	Description sql.NullString `db:"description"`
	Rating      int            `db:"rating"`
}

func (r *bookmarkRecord) toBookmark() *models.Bookmark {
	return &models.Bookmark{
		ID:          r.ID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description.String,
		Rating:      r.Rating,
	}
}

// BookmarkRepository persists bookmarks in a single relational table. Every
// operation is one statement; consistency is delegated to the database.
type BookmarkRepository struct {
	db *sqlx.DB
}

func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{
		db: db,
	}
}

// List returns all bookmarks in insertion order.
func (r *BookmarkRepository) List(ctx context.Context) ([]models.Bookmark, error) {
	const op = "database.postgres.BookmarkRepository.List"

	var recs []bookmarkRecord
	query := `SELECT * FROM bookmarks ORDER BY id`

	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("%s: failed to list bookmark records: %w", op, err)
	}

	bookmarks := make([]models.Bookmark, len(recs))
	for i := range recs {
		bookmarks[i] = *recs[i].toBookmark()
	}

	return bookmarks, nil
}

// GetByID returns the bookmark with the given id, or ErrBookmarkNotFound.
func (r *BookmarkRepository) GetByID(ctx context.Context, id int64) (*models.Bookmark, error) {
	const op = "database.postgres.BookmarkRepository.GetByID"

	rec := new(bookmarkRecord)
	query := `SELECT * FROM bookmarks WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get bookmark record: %w", op, err)
	}

	return rec.toBookmark(), nil
}

// Create inserts a new row and returns the persisted record, including the
// storage-generated id.
func (r *BookmarkRepository) Create(ctx context.Context, b models.Bookmark) (*models.Bookmark, error) {
	const op = "database.postgres.BookmarkRepository.Create"

	rec := new(bookmarkRecord)
	query := `INSERT INTO bookmarks(title, url, description, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	description := sql.NullString{String: b.Description, Valid: b.Description != ""}

	err := r.db.GetContext(ctx, rec, query, b.Title, b.URL, description, b.Rating)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create bookmark record: %w", op, err)
	}

	return rec.toBookmark(), nil
}

// Update applies only the supplied patch fields to the matching row. The SET
// clause is built dynamically, so unspecified fields retain their prior
// values. Returns ErrBookmarkNotFound when no row matches.
func (r *BookmarkRepository) Update(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error) {
	const op = "database.postgres.BookmarkRepository.Update"

	qb := squirrel.Update("bookmarks").PlaceholderFormat(squirrel.Dollar)

	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.URL != nil {
		qb = qb.Set("url", *patch.URL)
	}
	if patch.Description != nil {
		qb = qb.Set("description", *patch.Description)
	}
	if patch.Rating != nil {
		qb = qb.Set("rating", *patch.Rating)
	}

	query, args, err := qb.Where(squirrel.Eq{"id": id}).Suffix("RETURNING *").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	rec := new(bookmarkRecord)

	err = r.db.GetContext(ctx, rec, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update bookmark record: %w", op, err)
	}

	return rec.toBookmark(), nil
}

// Delete removes the matching row. Returns ErrBookmarkNotFound when no row
// was affected.
func (r *BookmarkRepository) Delete(ctx context.Context, id int64) error {
	const op = "database.postgres.BookmarkRepository.Delete"
	const query = `DELETE FROM bookmarks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from bookmarks table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, database.ErrBookmarkNotFound)
	}

	return nil
}
