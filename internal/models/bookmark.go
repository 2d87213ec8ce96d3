package models

// Bookmark represents a stored bookmark record.
type Bookmark struct {
	// ID is the unique identifier assigned by storage on insert.
	ID int64
	// Title is the display name of the bookmark.
	Title string
	// URL is the absolute web URL the bookmark points to.
	URL string
	// Description is an optional free-text note.
	Description string
	// Rating is an integer score in the range [0, 5].
	Rating int
}

// BookmarkPatch describes a partial update. Nil fields are left unchanged.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int
}

// Empty reports whether the patch carries no usable field. String fields
// count only when non-empty; a rating counts whenever it is present.
func (p BookmarkPatch) Empty() bool {
	if p.Title != nil && *p.Title != "" {
		return false
	}
	if p.URL != nil && *p.URL != "" {
		return false
	}
	if p.Description != nil && *p.Description != "" {
		return false
	}
	return p.Rating == nil
}
