package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
)

func mustRecord(t *testing.T, id, issue, status, priority, date string, extras map[string]string) *ticket.Record {
	t.Helper()
	r, err := ticket.ReconstructRecord(id, issue, status, priority, date, extras)
	require.NoError(t, err)
	return r
}

func snapshotIDs(s *MemoryStore) []string {
	rows := s.Snapshot()
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID()
	}
	return ids
}

func TestMemoryStore_Empty(t *testing.T) {
	s := NewMemoryStore()

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, ticket.CoreColumns(), s.Columns())
	assert.Empty(t, s.Snapshot())

	suffix, err := s.NextIDSuffix()
	require.NoError(t, err)
	assert.Equal(t, 1, suffix)
}

func TestMemoryStore_NextIDSuffix_MaxPlusOne(t *testing.T) {
	s := NewMemoryStore()

	// Insertion order does not matter; only the maximum suffix does.
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-5", "a", "", "", "", nil),
		mustRecord(t, "TICKET-9", "b", "", "", "", nil),
		mustRecord(t, "TICKET-2", "c", "", "", "", nil),
	}))

	suffix, err := s.NextIDSuffix()
	require.NoError(t, err)
	assert.Equal(t, 10, suffix)
}

func TestMemoryStore_Insert_PrependsBatch(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
	}))
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-2", "second", "", "", "", nil),
		mustRecord(t, "TICKET-3", "third", "", "", "", nil),
	}))

	// Newest batch sits on top, keeping its own internal order.
	assert.Equal(t, []string{"TICKET-2", "TICKET-3", "TICKET-1"}, snapshotIDs(s))
}

func TestMemoryStore_Insert_RejectsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
	}))

	var dup *ticket.DuplicateIDError

	err := s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "again", "", "", "", nil),
	})
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, s.Count())

	// A duplicate inside the batch rejects the whole batch.
	err = s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-2", "a", "", "", "", nil),
		mustRecord(t, "TICKET-2", "b", "", "", "", nil),
	})
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStore_Insert_ClonesInput(t *testing.T) {
	s := NewMemoryStore()
	r := mustRecord(t, "TICKET-1", "original", "", "", "", nil)
	require.NoError(t, s.Insert([]*ticket.Record{r}))

	require.NoError(t, r.SetField(ticket.ColumnIssue, "mutated after insert"))

	stored, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Issue())
}

func TestMemoryStore_GetByID(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "Open", "High", "2023-07-02", nil),
	}))

	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "first", r.Issue())

	// The returned record is a copy; mutating it does not touch the table.
	require.NoError(t, r.SetField(ticket.ColumnIssue, "changed"))
	again, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Issue())

	var unknown *ticket.UnknownIDError
	_, err = s.GetByID("TICKET-404")
	assert.ErrorAs(t, err, &unknown)
}

func TestMemoryStore_SetField(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "Open", "High", "2023-07-02", nil),
		mustRecord(t, "TICKET-2", "second", "Open", "Low", "2023-07-03", nil),
	}))

	require.NoError(t, s.SetField("TICKET-1", ticket.ColumnStatus, "Closed"))
	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "Closed", r.Status())

	var unknown *ticket.UnknownIDError
	assert.ErrorAs(t, s.SetField("TICKET-404", ticket.ColumnStatus, "Closed"), &unknown)

	assert.Error(t, s.SetField("TICKET-1", ticket.ColumnID, "TICKET-9"))
	assert.Error(t, s.SetField("TICKET-1", ticket.ColumnDateSubmitted, "2024-01-01"))
}

func TestMemoryStore_SetField_RegistersNewColumn(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
		mustRecord(t, "TICKET-2", "second", "", "", "", nil),
	}))

	require.NoError(t, s.SetField("TICKET-1", ticket.ColumnInternalNotes, "checked the switch"))

	assert.Contains(t, s.Columns(), ticket.ColumnInternalNotes)

	// Every other row gets the empty default for the new column.
	other, err := s.GetByID("TICKET-2")
	require.NoError(t, err)
	v, ok := other.Field(ticket.ColumnInternalNotes)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemoryStore_ColumnUnion(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
	}))

	s.ColumnUnion([]string{ticket.ColumnCM, "Region"})
	s.ColumnUnion([]string{ticket.ColumnCM, "Region"})

	want := append(ticket.CoreColumns(), ticket.ColumnCM, "Region")
	assert.Equal(t, want, s.Columns())

	// Core columns never enter the extra registry.
	s.ColumnUnion([]string{ticket.ColumnIssue})
	assert.Equal(t, want, s.Columns())

	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	v, ok := r.Field("Region")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemoryStore_ColumnRegistryGrowsFromInsertedExtras(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
	}))
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-2", "second", "", "", "", map[string]string{"Region": "West"}),
	}))

	assert.Contains(t, s.Columns(), "Region")

	// The earlier row is backfilled.
	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	v, ok := r.Field("Region")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemoryStore_ReplaceAll(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "Open", "High", "2023-07-02", nil),
		mustRecord(t, "TICKET-2", "second", "Open", "Low", "2023-07-03", nil),
	}))

	edited := s.Snapshot()
	require.NoError(t, edited[0].SetField(ticket.ColumnStatus, "Resolved"))
	require.NoError(t, s.ReplaceAll(edited))

	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "Resolved", r.Status())
	assert.Equal(t, []string{"TICKET-1", "TICKET-2"}, snapshotIDs(s))
}

func TestMemoryStore_ReplaceAll_RejectsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "", "", "", nil),
	}))

	var dup *ticket.DuplicateIDError
	err := s.ReplaceAll([]*ticket.Record{
		mustRecord(t, "TICKET-2", "a", "", "", "", nil),
		mustRecord(t, "TICKET-2", "b", "", "", "", nil),
	})
	assert.ErrorAs(t, err, &dup)

	// Table untouched on rejection.
	assert.Equal(t, []string{"TICKET-1"}, snapshotIDs(s))
}

func TestMemoryStore_Snapshot_IsDeepCopy(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert([]*ticket.Record{
		mustRecord(t, "TICKET-1", "first", "Open", "", "", nil),
	}))

	snap := s.Snapshot()
	require.NoError(t, snap[0].SetField(ticket.ColumnStatus, "Closed"))

	r, err := s.GetByID("TICKET-1")
	require.NoError(t, err)
	assert.Equal(t, "Open", r.Status())
}
