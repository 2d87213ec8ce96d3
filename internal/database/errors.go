package database

import "errors"

// ErrBookmarkNotFound is returned when an attempt is made to retrieve,
// update or delete a bookmark with an id that doesn't exist. Absence is a
// valid outcome, not a system fault.
var ErrBookmarkNotFound = errors.New("bookmark not found")
