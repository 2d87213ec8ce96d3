package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/vadimbarashkov/bookmarks-api/internal/database"
	"github.com/vadimbarashkov/bookmarks-api/internal/models"
)

var (
	errUnknown      = errors.New("unknown error")
	errAffectedRows = errors.New("affected rows error")
)

var columns = []string{"id", "title", "url", "description", "rating"}

func setupBookmarkRepository(t testing.TB) (*BookmarkRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewBookmarkRepository(db)

	t.Cleanup(func() {
		mockDB.Close()
		db.Close()
	})

	return repo, mock
}

func TestBookmarkRepository_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "Google", "https://www.google.com", "The best", 4).
			AddRow(2, "Bing", "https://www.bing.com", nil, 1)

		mock.ExpectQuery(`SELECT \* FROM bookmarks ORDER BY id`).
			WillReturnRows(rows)

		bookmarks, err := repo.List(context.TODO())

		assert.NoError(t, err)
		assert.Len(t, bookmarks, 2)
		assert.Equal(t, "Google", bookmarks[0].Title)
		assert.Equal(t, "The best", bookmarks[0].Description)
		assert.Equal(t, "", bookmarks[1].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookmarks ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(columns))

		bookmarks, err := repo.List(context.TODO())

		assert.NoError(t, err)
		assert.Empty(t, bookmarks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookmarks ORDER BY id`).
			WillReturnError(errUnknown)

		bookmarks, err := repo.List(context.TODO())

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, bookmarks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookmarkRepository_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(999999)).
			WillReturnRows(sqlmock.NewRows(columns))

		bookmark, err := repo.GetByID(context.TODO(), 999999)

		assert.ErrorIs(t, err, database.ErrBookmarkNotFound)
		assert.Nil(t, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnError(errUnknown)

		bookmark, err := repo.GetByID(context.TODO(), 1)

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(2, "Bing", "https://www.bing.com", "nice try, microsoft", 1)

		mock.ExpectQuery(`SELECT \* FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnRows(rows)

		bookmark, err := repo.GetByID(context.TODO(), 2)

		assert.NoError(t, err)
		assert.Equal(t, &models.Bookmark{
			ID:          2,
			Title:       "Bing",
			URL:         "https://www.bing.com",
			Description: "nice try, microsoft",
			Rating:      1,
		}, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookmarkRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "Old Search Engine", "http://oldy.com", "It is old.", 3)

		mock.ExpectQuery(`INSERT INTO bookmarks`).
			WithArgs("Old Search Engine", "http://oldy.com", "It is old.", 3).
			WillReturnRows(rows)

		bookmark, err := repo.Create(context.TODO(), models.Bookmark{
			Title:       "Old Search Engine",
			URL:         "http://oldy.com",
			Description: "It is old.",
			Rating:      3,
		})

		assert.NoError(t, err)
		assert.EqualValues(t, 1, bookmark.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty description stored as null", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "Google", "https://www.google.com", nil, 4)

		mock.ExpectQuery(`INSERT INTO bookmarks`).
			WithArgs("Google", "https://www.google.com", nil, 4).
			WillReturnRows(rows)

		bookmark, err := repo.Create(context.TODO(), models.Bookmark{
			Title:  "Google",
			URL:    "https://www.google.com",
			Rating: 4,
		})

		assert.NoError(t, err)
		assert.Equal(t, "", bookmark.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`INSERT INTO bookmarks`).
			WillReturnError(errUnknown)

		bookmark, err := repo.Create(context.TODO(), models.Bookmark{Title: "Google", URL: "https://www.google.com", Rating: 4})

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookmarkRepository_Update(t *testing.T) {
	t.Run("sets only supplied fields", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "New Title", "https://www.google.com", "The best", 4)

		mock.ExpectQuery(`UPDATE bookmarks SET title = \$1 WHERE id = \$2 RETURNING \*`).
			WithArgs("New Title", int64(1)).
			WillReturnRows(rows)

		title := "New Title"
		bookmark, err := repo.Update(context.TODO(), 1, models.BookmarkPatch{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "New Title", bookmark.Title)
		assert.Equal(t, "The best", bookmark.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`UPDATE bookmarks SET rating = \$1 WHERE id = \$2 RETURNING \*`).
			WithArgs(2, int64(999999)).
			WillReturnRows(sqlmock.NewRows(columns))

		rating := 2
		bookmark, err := repo.Update(context.TODO(), 999999, models.BookmarkPatch{Rating: &rating})

		assert.ErrorIs(t, err, database.ErrBookmarkNotFound)
		assert.Nil(t, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectQuery(`UPDATE bookmarks SET url = \$1 WHERE id = \$2 RETURNING \*`).
			WithArgs("https://example.com", int64(1)).
			WillReturnError(errUnknown)

		url := "https://example.com"
		bookmark, err := repo.Update(context.TODO(), 1, models.BookmarkPatch{URL: &url})

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, bookmark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookmarkRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.TODO(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(999999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.TODO(), 999999), database.ErrBookmarkNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("affected rows error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewErrorResult(errAffectedRows))

		assert.ErrorIs(t, repo.Delete(context.TODO(), 1), errAffectedRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupBookmarkRepository(t)

		mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnError(errUnknown)

		assert.ErrorIs(t, repo.Delete(context.TODO(), 1), errUnknown)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
