package query

import (
	"context"
	"sync"
)

// Index supplies the documents a query runs against.
type Index interface {
	Documents(ctx context.Context) ([]Document, error)
}

// MemoryIndex is an in-memory Index.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemoryIndex returns an index holding docs.
func NewMemoryIndex(docs ...Document) *MemoryIndex {
	idx := &MemoryIndex{}
	idx.Add(docs...)
	return idx
}

// Add appends documents.
func (i *MemoryIndex) Add(docs ...Document) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs = append(i.docs, docs...)
}

// Documents returns a snapshot of the indexed documents.
func (i *MemoryIndex) Documents(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Document(nil), i.docs...), nil
}
