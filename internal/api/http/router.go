package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/bookmarks-api/internal/config"
	"github.com/vadimbarashkov/bookmarks-api/internal/models"
	"github.com/vadimbarashkov/bookmarks-api/pkg/middleware/recoverer"
)

// BookmarkService defines the interface for the core bookmark business logic.
type BookmarkService interface {
	// ListBookmarks returns all stored bookmarks.
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)

	// GetBookmark retrieves a single bookmark by id.
	// It returns database.ErrBookmarkNotFound when the id doesn't exist.
	GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error)

	// CreateBookmark sanitizes and stores a new bookmark, returning the
	// persisted record including the storage-generated id.
	CreateBookmark(ctx context.Context, b models.Bookmark) (*models.Bookmark, error)

	// UpdateBookmark applies a partial update to the bookmark with the given id.
	// It returns database.ErrBookmarkNotFound when the id doesn't exist.
	UpdateBookmark(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error)

	// DeleteBookmark removes the bookmark with the given id.
	// It returns database.ErrBookmarkNotFound when the id doesn't exist.
	DeleteBookmark(ctx context.Context, id int64) error
}

// getValidate initializes a validator instance for incoming request payloads,
// mapping struct fields to their JSON names in reported errors.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
// The bookmark routes are mounted at both /bookmarks and /api/bookmarks, which
// are equivalent; /ping stays outside the auth gate.
func NewRouter(logger *httplog.Logger, svc BookmarkService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger, cfg.Env != config.EnvProd))

	r.Get("/ping", handlePing)

	validate := getValidate()

	bookmarkRoutes := func(r chi.Router) {
		r.Get("/", handleListBookmarks(svc, cfg.Env))
		r.Post("/", handleCreateBookmark(svc, validate, cfg.Env))

		r.Route("/{bookmarkID}", func(r chi.Router) {
			r.Get("/", handleGetBookmark(svc, cfg.Env))
			r.Patch("/", handleUpdateBookmark(svc, cfg.Env))
			r.Delete("/", handleDeleteBookmark(svc, cfg.Env))
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(authenticate(cfg.APIToken))

		r.Route("/bookmarks", bookmarkRoutes)
		r.Route("/api/bookmarks", bookmarkRoutes)
	})

	r.NotFound(handleNotFound)

	return r
}
