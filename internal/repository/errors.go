package repository

import (
	"errors"
	"net/http"

	"github.com/go-kivik/kivik/v4"
)

// ErrNotFound is returned when a document is absent. Services map it to
// their own not-found errors so ownership misses and true misses look the
// same to callers.
var ErrNotFound = errors.New("document not found")

func isNotFound(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusNotFound
}

// idPrefix builds a Mango range selector matching every document of one
// collection. Doc ids are "<kind>:<uuid>", and ';' is the byte after ':',
// so the range covers exactly the "<kind>:" prefix.
func idPrefix(kind string) map[string]interface{} {
	return map[string]interface{}{
		"$gt": kind + ":",
		"$lt": kind + ";",
	}
}
