package store

import "context"

// Filter is an equality predicate on a top-level document field. Equality is
// the only query operator the catalog needs from the backing store.
type Filter struct {
	Field string
	Value interface{}
}

// Document is a schema-flexible record. Data holds whatever fields the
// document was written with; readers must tolerate missing fields.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DocumentStore is the contract the catalog consumes from the managed
// document database: collection-scoped equality queries, get-by-id, add with
// a store-generated id, top-level field merge, and hard delete. There are no
// transactions and no compare-and-swap; callers that read-modify-write get
// last-write-wins semantics.
type DocumentStore interface {
	// Query returns all documents in the collection matching every filter.
	// Result ordering is whatever the store returns; callers must not rely
	// on it.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)

	// Get returns nil (and no error) when the document does not exist.
	// Errors indicate transport failure only.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Add creates a document and returns the store-assigned id.
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)

	// Update merges the given top-level fields into the document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete removes the document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, collection, id string) error
}
