// README: Document store boundary used for orders, chats, and the active-session pointer.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id has no record.
var ErrNotFound = errors.New("document not found")

// Document is a stored record with its collection-assigned id.
type Document struct {
	ID   string
	Data map[string]any
}

// Collection exposes the subset of document-store operations the engine
// needs: keyed CRUD, partial field update, array append, and single-field
// equality queries.
type Collection interface {
	// Add inserts data under a fresh id and returns the id.
	Add(ctx context.Context, data map[string]any) (string, error)
	// Get returns the document data or ErrNotFound.
	Get(ctx context.Context, id string) (map[string]any, error)
	// Set writes the full document at id, creating it if absent.
	Set(ctx context.Context, id string, data map[string]any) error
	// Update merges the given fields into an existing document.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Append appends values to an array field of an existing document.
	Append(ctx context.Context, id string, field string, values ...any) error
	// Query returns all documents whose field equals value.
	Query(ctx context.Context, field string, value any) ([]Document, error)
}

// Store hands out named collections.
type Store interface {
	Collection(name string) Collection
}
