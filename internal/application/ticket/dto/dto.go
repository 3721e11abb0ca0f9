package dto

import (
	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
)

// RecordDTO is the transfer shape of one table row. Extras carries the
// session's dynamic columns (notes, CM assignee, upload columns) keyed by
// column name.
type RecordDTO struct {
	ID            string            `json:"id"`
	Issue         string            `json:"issue"`
	Status        string            `json:"status"`
	Priority      string            `json:"priority"`
	DateSubmitted string            `json:"date_submitted"`
	Extras        map[string]string `json:"extras,omitempty"`
}

func FromRecord(r *ticket.Record) RecordDTO {
	extras := make(map[string]string)
	for _, col := range r.ExtraColumns() {
		if v, ok := r.Field(col); ok {
			extras[col] = v
		}
	}
	return RecordDTO{
		ID:            r.ID(),
		Issue:         r.Issue(),
		Status:        r.Status(),
		Priority:      r.Priority(),
		DateSubmitted: r.DateSubmitted(),
		Extras:        extras,
	}
}

// Field returns the DTO's value for a core or extra column name.
func (d RecordDTO) Field(name string) (string, bool) {
	switch name {
	case ticket.ColumnID:
		return d.ID, true
	case ticket.ColumnIssue:
		return d.Issue, true
	case ticket.ColumnStatus:
		return d.Status, true
	case ticket.ColumnPriority:
		return d.Priority, true
	case ticket.ColumnDateSubmitted:
		return d.DateSubmitted, true
	}
	v, ok := d.Extras[name]
	return v, ok
}
