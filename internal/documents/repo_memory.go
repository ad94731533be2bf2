package documents

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryRepo is an in-memory implementation of Repo bounded by slot count
// and idle age. Contents are lost on restart.
type MemoryRepo struct {
	slots *expirable.LRU[string, Document] // sessionId -> document
}

// NewMemoryRepo constructs a MemoryRepo holding at most maxSlots documents.
// The least recently used slot is evicted first; ttl <= 0 disables expiry.
func NewMemoryRepo(maxSlots int, ttl time.Duration) *MemoryRepo {
	if maxSlots < 1 {
		maxSlots = 1
	}
	return &MemoryRepo{
		slots: expirable.NewLRU[string, Document](maxSlots, nil, ttl),
	}
}

// Put stores/overwrites the document for a session.
func (r *MemoryRepo) Put(ctx context.Context, sessionID string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.slots.Add(sessionID, doc)
	return nil
}

// Get returns the document for a session.
func (r *MemoryRepo) Get(ctx context.Context, sessionID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	doc, ok := r.slots.Get(sessionID)
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Len reports how many documents are held.
func (r *MemoryRepo) Len() int {
	return r.slots.Len()
}
