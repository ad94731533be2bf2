package documents

import "context"

// Repo holds at most one document per session handle.
type Repo interface {
	// Put replaces the document stored for sessionID.
	Put(ctx context.Context, sessionID string, doc Document) error
	// Get returns the document stored for sessionID or ErrNotFound.
	Get(ctx context.Context, sessionID string) (Document, error)
}
