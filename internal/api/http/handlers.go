package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/bookmarks-api/internal/config"
	"github.com/vadimbarashkov/bookmarks-api/internal/database"
	"github.com/vadimbarashkov/bookmarks-api/pkg/response"
)

// handlePing handles health check requests to ensure the server is running.
func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "pong")
}

// handleNotFound handles requests for unmatched paths.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, "Page Not Found")
}

// parseID extracts the bookmark id path parameter. A non-numeric id can never
// reference a stored row, so it reads as absent.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "bookmarkID"), 10, 64)
}

// serverError logs the fault in full and responds 500. The body carries the
// underlying message only outside production.
func serverError(w http.ResponseWriter, r *http.Request, env, op string, err error) {
	httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

	resp := response.ServerError
	if env != config.EnvProd {
		resp = response.Error(err.Error())
	}

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, resp)
}

// handleListBookmarks handles GET requests for the whole collection. An empty
// store yields an empty array, not an error.
func handleListBookmarks(svc BookmarkService, env string) http.HandlerFunc {
	const op = "api.http.handleListBookmarks"

	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := svc.ListBookmarks(r.Context())
		if err != nil {
			serverError(w, r, env, op, err)
			return
		}

		resp := make([]bookmarkResponse, 0, len(bookmarks))
		for i := range bookmarks {
			resp = append(resp, toBookmarkResponse(&bookmarks[i]))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, resp)
	}
}

// handleGetBookmark handles GET requests for a single bookmark, returning 404
// with an empty body when the id doesn't exist.
func handleGetBookmark(svc BookmarkService, env string) http.HandlerFunc {
	const op = "api.http.handleGetBookmark"

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		bookmark, err := svc.GetBookmark(r.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrBookmarkNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			serverError(w, r, env, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toBookmarkResponse(bookmark))
	}
}

// handleCreateBookmark handles POST requests.
//
// The body must carry title, url and rating; the first missing field in that
// order determines the error. On success the created record is returned with
// a Location header pointing at its canonical URI.
func handleCreateBookmark(svc BookmarkService, validate *validator.Validate, env string) http.HandlerFunc {
	const op = "api.http.handleCreateBookmark"

	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			// An empty body falls through to the presence check, which
			// reports the first required field.
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(decodeMessage(err)))
			return
		}

		// Presence runs before format: a missing rating outranks a
		// malformed url.
		if f := req.requiredField(); f != "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("%s is required", f)))
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validationMessage(err)))
			return
		}

		bookmark, err := svc.CreateBookmark(r.Context(), req.toBookmark())
		if err != nil {
			serverError(w, r, env, op, err)
			return
		}

		location := fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), bookmark.ID)
		w.Header().Set("Location", location)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, toBookmarkResponse(bookmark))
	}
}

// handleUpdateBookmark handles PATCH requests. The body must name at least
// one mutable field; a patch against a missing id yields 404, success 204.
func handleUpdateBookmark(svc BookmarkService, env string) http.HandlerFunc {
	const op = "api.http.handleUpdateBookmark"

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req updateBookmarkRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(decodeMessage(err)))
			return
		}

		patch := req.toPatch()
		if patch.Empty() {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(emptyPatchMessage))
			return
		}

		if _, err := svc.UpdateBookmark(r.Context(), id, patch); err != nil {
			if errors.Is(err, database.ErrBookmarkNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			serverError(w, r, env, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDeleteBookmark handles DELETE requests: 404 when the id doesn't
// exist, else 204. Repeated deletes of the same id are stable.
func handleDeleteBookmark(svc BookmarkService, env string) http.HandlerFunc {
	const op = "api.http.handleDeleteBookmark"

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if err := svc.DeleteBookmark(r.Context(), id); err != nil {
			if errors.Is(err, database.ErrBookmarkNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			serverError(w, r, env, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
