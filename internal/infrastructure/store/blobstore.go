package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
)

var _ ticket.BlobStore = (*MemoryBlobStore)(nil)

// MemoryBlobStore keeps uploaded file blobs in memory, keyed by ticket ID.
// It is a side table owned separately from the record store so a durable
// backend can replace it without touching record logic.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]ticket.Attachment
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs: make(map[string]ticket.Attachment),
	}
}

func (s *MemoryBlobStore) Put(id string, att ticket.Attachment) error {
	if id == "" {
		return fmt.Errorf("ticket id is required")
	}
	if att.Filename == "" {
		return fmt.Errorf("attachment filename is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	att.Data = slices.Clone(att.Data)
	s.blobs[id] = att
	return nil
}

func (s *MemoryBlobStore) Get(id string) (ticket.Attachment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	att, ok := s.blobs[id]
	if !ok {
		return ticket.Attachment{}, false
	}
	att.Data = slices.Clone(att.Data)
	return att, true
}
