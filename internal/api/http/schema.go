package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/bookmarks-api/internal/models"
	"github.com/vadimbarashkov/bookmarks-api/pkg/sanitize"
)

// createBookmarkRequest represents the request payload for creating a bookmark.
// Presence of the required fields is checked by requiredField before the
// format tags run, so a missing field is always reported ahead of a
// malformed one.
type createBookmarkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url" validate:"omitempty,http_url"`
	Rating      *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	Description string `json:"description"`
}

// requiredField returns the name of the first missing required field,
// checked in title, url, rating order, or "" when all are present.
func (r *createBookmarkRequest) requiredField() string {
	switch {
	case r.Title == "":
		return "title"
	case r.URL == "":
		return "url"
	case r.Rating == nil:
		return "rating"
	}
	return ""
}

func (r *createBookmarkRequest) toBookmark() models.Bookmark {
	return models.Bookmark{
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Rating:      *r.Rating,
	}
}

// updateBookmarkRequest represents a partial update. Nil fields were absent
// from the request body.
type updateBookmarkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

func (r *updateBookmarkRequest) toPatch() models.BookmarkPatch {
	return models.BookmarkPatch{
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Rating:      r.Rating,
	}
}

// bookmarkResponse represents the external representation of a bookmark.
type bookmarkResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Rating      int    `json:"rating"`
}

// toBookmarkResponse escapes the free-text fields again on egress, so rows
// written before the escaping policy existed are still rendered safely.
func toBookmarkResponse(b *models.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.HTML(b.Title),
		URL:         b.URL,
		Description: sanitize.HTML(b.Description),
		Rating:      b.Rating,
	}
}

const emptyPatchMessage = "request body must contain at least one of 'title', 'url', 'description' or 'rating'"

// validationMessage renders the first format-validation failure as a
// client-facing message naming the offending field. validator reports
// fields in struct order.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "http_url":
		return fmt.Sprintf("%s must be a valid absolute URL", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must be an integer between 0 and 5", fe.Field())
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

// decodeMessage maps a JSON decode failure to a client-facing message. Type
// mismatches (a non-integer rating, say) name the offending field.
func decodeMessage(err error) string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		if ute.Field == "rating" {
			return "rating must be an integer between 0 and 5"
		}
		return fmt.Sprintf("%s is invalid", ute.Field)
	}

	return "invalid request body"
}
