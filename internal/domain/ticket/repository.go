package ticket

// Repository is the ordered in-memory ticket table. All operations are
// synchronous; implementations guard shared state with their own locking.
type Repository interface {
	// Insert prepends a batch ahead of every existing row, preserving the
	// batch's own order. IDs colliding with stored rows or with each other
	// are rejected with a DuplicateIDError and nothing is inserted.
	Insert(records []*Record) error

	// NextIDSuffix scans every stored ID and returns max(suffix)+1. A
	// stored ID that fails to parse yields a MalformedIDError. An empty
	// table yields 1.
	NextIDSuffix() (int, error)

	// GetByID returns a copy of the row, or an UnknownIDError.
	GetByID(id string) (*Record, error)

	// SetField writes one field of one row. Unknown IDs yield an
	// UnknownIDError; ID and Date Submitted are not writable. Writing a
	// new extra column registers it and backfills every row.
	SetField(id, field, value string) error

	// ColumnUnion registers extra columns and backfills the empty-string
	// default on every row missing any registered column. Idempotent; the
	// registered column set only grows within a session.
	ColumnUnion(columns []string)

	// Columns returns the current full column list: core columns first,
	// then extra columns in registration order.
	Columns() []string

	// Snapshot returns deep copies of all rows in table order.
	Snapshot() []*Record

	// ReplaceAll swaps the table content for the given rows. Duplicate IDs
	// are rejected with a DuplicateIDError and the table is unchanged.
	ReplaceAll(records []*Record) error

	// Count returns the number of rows.
	Count() int
}

// Attachment is a file blob associated with a ticket.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlobStore holds uploaded file blobs keyed by ticket ID. It is a side
// table deliberately decoupled from the Repository so a durable backend
// can replace it without touching record logic.
type BlobStore interface {
	Put(id string, att Attachment) error
	Get(id string) (Attachment, bool)
}
