package ticket

import (
	"slices"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
)

// ColumnPolicy is the role-scoped projection of the table: which of the
// current columns the role sees, which it may edit through the table
// surface, and which ingestion entry points it may use.
type ColumnPolicy struct {
	Visible   []string
	Editable  []string
	CanSubmit bool
	CanUpload bool
}

// staffEditable lists the columns CM staff may change through the table
// edit surface. ID and Date Submitted are immutable for every role;
// internal notes go through the notes form, not the table.
var staffEditable = []string{ColumnStatus, ColumnPriority, ColumnCM, ColumnPublicNotes}

// ProjectColumns computes the visibility and edit rights of a role over
// the given column list. Pure function: it never mutates its inputs.
func ProjectColumns(role vo.Role, columns []string) ColumnPolicy {
	policy := ColumnPolicy{}

	switch role {
	case vo.RoleBranchManager:
		// Submitter view: everything except staff-only notes, nothing
		// editable.
		for _, col := range columns {
			if col == ColumnInternalNotes {
				continue
			}
			policy.Visible = append(policy.Visible, col)
		}
		policy.CanSubmit = true
		policy.CanUpload = true

	case vo.RoleCMStaff:
		policy.Visible = slices.Clone(columns)
		for _, col := range staffEditable {
			if slices.Contains(columns, col) {
				policy.Editable = append(policy.Editable, col)
			}
		}

	case vo.RoleSupervisor:
		// Strict read-only oversight view.
		policy.Visible = slices.Clone(columns)
	}

	return policy
}

// CanEditColumn reports whether the role may change the named column
// through the table edit surface.
func CanEditColumn(role vo.Role, column string) bool {
	if role != vo.RoleCMStaff {
		return false
	}
	return slices.Contains(staffEditable, column)
}

// NotesColumn returns the notes column a role writes through the notes
// form, or false for roles without one.
func NotesColumn(role vo.Role) (string, bool) {
	switch role {
	case vo.RoleCMStaff:
		return ColumnInternalNotes, true
	case vo.RoleBranchManager:
		return ColumnPublicNotes, true
	default:
		return "", false
	}
}
