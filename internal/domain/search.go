package domain

import "context"

// SearchRecord is the minimal document mirrored into a search index.
type SearchRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchIndex is the contract for one per-entity autocomplete index.
// The mirror is eventually consistent with the entity store: callers warm
// it once (BulkIndex when Count reports below 1) and serve reads from it
// afterwards.
type SearchIndex interface {
	CreateIndexIfNotExists(ctx context.Context) error
	// Count returns -1 when the backend cannot be reached, signaling
	// "not ready" rather than "empty".
	Count(ctx context.Context) int64
	// BulkIndex upserts records keyed by id; records with a zero id or
	// empty name are silently skipped.
	BulkIndex(ctx context.Context, records []SearchRecord) error
	Index(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, name string, page, perPage int) (*Pagination[SearchRecord], error)
}
