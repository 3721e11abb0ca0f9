package ticket

import "fmt"

// MalformedIDError reports a stored or supplied ticket ID that does not
// match the TICKET-<n> pattern. It indicates corrupt table data and must
// not be swallowed.
type MalformedIDError struct {
	ID string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed ticket id %q: expected %s<number>", e.ID, IDPrefix)
}

// UnknownIDError reports a lookup or mutation against an ID that is not
// present in the table.
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown ticket id %q", e.ID)
}

// DuplicateIDError reports an ID that would collide with a row already in
// the table, or with another row in the same batch.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate ticket id %q", e.ID)
}
