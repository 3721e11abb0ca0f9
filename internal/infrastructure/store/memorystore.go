// Package store holds the transient in-memory state of the ticket desk:
// the ordered record table, the attachment blob side table, and the
// startup seeder. Nothing here survives a process restart.
package store

import (
	"slices"
	"sync"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
)

var _ ticket.Repository = (*MemoryStore)(nil)

// MemoryStore is the ordered in-memory ticket table. Rows are kept
// most-recent-first: inserted batches are placed ahead of existing rows.
// The extra-column registry only grows within a session; every row is
// backfilled with the empty-string default for columns it is missing.
type MemoryStore struct {
	mu        sync.RWMutex
	rows      []*ticket.Record
	byID      map[string]*ticket.Record
	extraCols []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*ticket.Record),
	}
}

func (s *MemoryStore) Insert(records []*ticket.Record) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if _, exists := s.byID[r.ID()]; exists {
			return &ticket.DuplicateIDError{ID: r.ID()}
		}
		if seen[r.ID()] {
			return &ticket.DuplicateIDError{ID: r.ID()}
		}
		seen[r.ID()] = true
	}

	batch := make([]*ticket.Record, len(records))
	for i, r := range records {
		batch[i] = r.Clone()
	}

	for _, r := range batch {
		s.registerColumnsLocked(r.ExtraColumns())
	}

	s.rows = append(batch, s.rows...)
	for _, r := range batch {
		s.byID[r.ID()] = r
	}

	s.backfillLocked()
	return nil
}

func (s *MemoryStore) NextIDSuffix() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxSuffix := 0
	for _, r := range s.rows {
		suffix, err := r.Suffix()
		if err != nil {
			return 0, err
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}
	return maxSuffix + 1, nil
}

func (s *MemoryStore) GetByID(id string) (*ticket.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, &ticket.UnknownIDError{ID: id}
	}
	return r.Clone(), nil
}

func (s *MemoryStore) SetField(id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return &ticket.UnknownIDError{ID: id}
	}
	if err := r.SetField(field, value); err != nil {
		return err
	}

	// A write to a column the table has not seen yet introduces it for
	// every row.
	s.registerColumnsLocked([]string{field})
	s.backfillLocked()
	return nil
}

func (s *MemoryStore) ColumnUnion(columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registerColumnsLocked(columns)
	s.backfillLocked()
}

func (s *MemoryStore) Columns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(ticket.CoreColumns(), slices.Clone(s.extraCols)...)
}

func (s *MemoryStore) Snapshot() []*ticket.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*ticket.Record, len(s.rows))
	for i, r := range s.rows {
		rows[i] = r.Clone()
	}
	return rows
}

func (s *MemoryStore) ReplaceAll(records []*ticket.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.ID()] {
			return &ticket.DuplicateIDError{ID: r.ID()}
		}
		seen[r.ID()] = true
	}

	rows := make([]*ticket.Record, len(records))
	byID := make(map[string]*ticket.Record, len(records))
	for i, r := range records {
		rows[i] = r.Clone()
		byID[r.ID()] = rows[i]
	}

	s.rows = rows
	s.byID = byID
	for _, r := range rows {
		s.registerColumnsLocked(r.ExtraColumns())
	}
	s.backfillLocked()
	return nil
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// registerColumnsLocked adds unseen extra columns to the registry,
// ignoring core columns. Caller holds the write lock.
func (s *MemoryStore) registerColumnsLocked(columns []string) {
	for _, col := range columns {
		if slices.Contains(ticket.CoreColumns(), col) {
			continue
		}
		if !slices.Contains(s.extraCols, col) {
			s.extraCols = append(s.extraCols, col)
		}
	}
}

// backfillLocked ensures every row carries every registered extra column.
// Caller holds the write lock.
func (s *MemoryStore) backfillLocked() {
	for _, r := range s.rows {
		for _, col := range s.extraCols {
			r.EnsureColumn(col)
		}
	}
}
