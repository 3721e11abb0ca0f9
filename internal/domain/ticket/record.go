package ticket

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
)

// IDPrefix is the fixed prefix of every ticket ID; the remainder is the
// integer suffix used for ordering and ID generation.
const IDPrefix = "TICKET-"

// Date formats carried by the Date Submitted column. Manually submitted
// tickets are stamped with SubmitDateFormat; seeded rows carry a plain
// calendar date.
const (
	SubmitDateFormat = "01-02-2006"
	SeedDateFormat   = "2006-01-02"
)

// Core column names of the table. Extra columns (notes, assignee,
// attachment markers, arbitrary upload columns) live beside them and are
// tracked by the record store.
const (
	ColumnID            = "ID"
	ColumnIssue         = "Issue"
	ColumnStatus        = "Status"
	ColumnPriority      = "Priority"
	ColumnDateSubmitted = "Date Submitted"

	ColumnCM            = "CM"
	ColumnInternalNotes = "Internal Notes"
	ColumnPublicNotes   = "Public Notes"
	ColumnAttachedFile  = "Attached File"
)

// CoreColumns returns the fixed leading columns of the table in display
// order.
func CoreColumns() []string {
	return []string{ColumnID, ColumnIssue, ColumnStatus, ColumnPriority, ColumnDateSubmitted}
}

// Record is one row of the ticket table. Status and priority are held as
// raw strings: uploaded batches may carry arbitrary values until they pass
// through a validated edit surface, so the closed enum sets are enforced
// at those surfaces rather than here.
type Record struct {
	id            string
	issue         string
	status        string
	priority      string
	dateSubmitted string
	extras        map[string]string
}

// NewRecord builds a validated record for the manual submission path.
func NewRecord(id, issue string, status vo.Status, priority vo.Priority, dateSubmitted string) (*Record, error) {
	if _, err := ParseSuffix(id); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(issue)) == 0 {
		return nil, fmt.Errorf("issue description is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if len(dateSubmitted) == 0 {
		return nil, fmt.Errorf("date submitted is required")
	}

	return &Record{
		id:            id,
		issue:         issue,
		status:        status.String(),
		priority:      priority.String(),
		dateSubmitted: dateSubmitted,
		extras:        map[string]string{},
	}, nil
}

// ReconstructRecord builds a record from already-ingested values without
// enum validation. Used by the seeder and the bulk upload path, where
// status/priority may be absent or carry values outside the closed sets.
func ReconstructRecord(id, issue, status, priority, dateSubmitted string, extras map[string]string) (*Record, error) {
	if _, err := ParseSuffix(id); err != nil {
		return nil, err
	}

	r := &Record{
		id:            id,
		issue:         issue,
		status:        status,
		priority:      priority,
		dateSubmitted: dateSubmitted,
		extras:        map[string]string{},
	}
	maps.Copy(r.extras, extras)
	return r, nil
}

func (r *Record) ID() string {
	return r.id
}

func (r *Record) Issue() string {
	return r.issue
}

func (r *Record) Status() string {
	return r.status
}

func (r *Record) Priority() string {
	return r.priority
}

func (r *Record) DateSubmitted() string {
	return r.dateSubmitted
}

// Suffix returns the numeric portion of the record's ID.
func (r *Record) Suffix() (int, error) {
	return ParseSuffix(r.id)
}

// ExtraColumns returns the names of the extra columns present on this row.
func (r *Record) ExtraColumns() []string {
	cols := make([]string, 0, len(r.extras))
	for name := range r.extras {
		cols = append(cols, name)
	}
	return cols
}

// Field returns the value of a core or extra column.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case ColumnID:
		return r.id, true
	case ColumnIssue:
		return r.issue, true
	case ColumnStatus:
		return r.status, true
	case ColumnPriority:
		return r.priority, true
	case ColumnDateSubmitted:
		return r.dateSubmitted, true
	}
	v, ok := r.extras[name]
	return v, ok
}

// SetField writes a core or extra column. ID and Date Submitted are
// immutable through every editing surface and are rejected here. Writing
// an extra column the row does not carry yet introduces it on this row;
// table-wide backfill is the store's job.
func (r *Record) SetField(name, value string) error {
	switch name {
	case ColumnID:
		return fmt.Errorf("ticket id is immutable")
	case ColumnDateSubmitted:
		return fmt.Errorf("date submitted is immutable")
	case ColumnIssue:
		r.issue = value
	case ColumnStatus:
		r.status = value
	case ColumnPriority:
		r.priority = value
	default:
		r.extras[name] = value
	}
	return nil
}

// EnsureColumn backfills an extra column with the empty-string default if
// the row does not carry it yet.
func (r *Record) EnsureColumn(name string) {
	switch name {
	case ColumnID, ColumnIssue, ColumnStatus, ColumnPriority, ColumnDateSubmitted:
		return
	}
	if _, ok := r.extras[name]; !ok {
		r.extras[name] = ""
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		id:            r.id,
		issue:         r.issue,
		status:        r.status,
		priority:      r.priority,
		dateSubmitted: r.dateSubmitted,
		extras:        make(map[string]string, len(r.extras)),
	}
	maps.Copy(c.extras, r.extras)
	return c
}

// EqualContent reports whether two records carry identical values in every
// column.
func (r *Record) EqualContent(other *Record) bool {
	if other == nil {
		return false
	}
	return r.id == other.id &&
		r.issue == other.issue &&
		r.status == other.status &&
		r.priority == other.priority &&
		r.dateSubmitted == other.dateSubmitted &&
		maps.Equal(r.extras, other.extras)
}

// ParseSuffix extracts the integer suffix of a ticket ID. IDs that do not
// match the TICKET-<n> pattern yield a MalformedIDError.
func ParseSuffix(id string) (int, error) {
	rest, ok := strings.CutPrefix(id, IDPrefix)
	if !ok || rest == "" {
		return 0, &MalformedIDError{ID: id}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, &MalformedIDError{ID: id}
	}
	return n, nil
}

// FormatID builds a ticket ID from an integer suffix.
func FormatID(suffix int) string {
	return IDPrefix + strconv.Itoa(suffix)
}
