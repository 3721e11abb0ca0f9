package usecases

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	"github.com/ChaleeCh/support-tickets/internal/infrastructure/store"
)

func mustRecord(t *testing.T, id, issue, status, priority, date string, extras map[string]string) *ticket.Record {
	t.Helper()
	r, err := ticket.ReconstructRecord(id, issue, status, priority, date, extras)
	require.NoError(t, err)
	return r
}

func newStoreWith(t *testing.T, records ...*ticket.Record) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	if len(records) > 0 {
		require.NoError(t, s.Insert(records))
	}
	return s
}

func snapshotIDs(s *store.MemoryStore) []string {
	rows := s.Snapshot()
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID()
	}
	return ids
}
