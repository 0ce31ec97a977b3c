package index

import "context"

// Searcher is the read side of the index. Consumers should depend on this
// interface rather than the concrete *DB type.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

var _ Searcher = (*DB)(nil)
