package usecases

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	ticketdto "github.com/ChaleeCh/support-tickets/internal/application/ticket/dto"
	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type ReconcileEditsCommand struct {
	Role string
	Rows []ticketdto.RecordDTO
}

type ReconcileEditsResult struct {
	ChangedIDs []string
	Total      int
}

// ReconcileEditsUseCase commits an externally edited snapshot of the
// table. The diff is keyed by ticket ID, never by row position, so
// re-sorting between read and write cannot misattribute a change to the
// wrong row. A snapshot that does not cover the stored table exactly is
// rejected without mutation.
type ReconcileEditsUseCase struct {
	repo      ticket.Repository
	authz     RoleAuthorizer
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewReconcileEditsUseCase(repo ticket.Repository, authz RoleAuthorizer, log logger.Interface) *ReconcileEditsUseCase {
	return &ReconcileEditsUseCase{
		repo:      repo,
		authz:     authz,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    log,
	}
}

func (uc *ReconcileEditsUseCase) Execute(ctx context.Context, cmd ReconcileEditsCommand) (*ReconcileEditsResult, error) {
	uc.logger.Infow("executing reconcile edits use case", "role", cmd.Role, "rows", len(cmd.Rows))

	role, err := vo.NewRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !uc.authz.CanEditTable(role) {
		return nil, errors.NewForbiddenError("role does not permit editing the table")
	}

	stored := uc.repo.Snapshot()

	edited := make(map[string]ticketdto.RecordDTO, len(cmd.Rows))
	for _, row := range cmd.Rows {
		if row.ID == "" {
			return nil, errors.NewValidationError("edited snapshot contains a row without an id")
		}
		if _, dup := edited[row.ID]; dup {
			return nil, errors.NewValidationError("edited snapshot contains a duplicate id", row.ID)
		}
		edited[row.ID] = row
	}

	storedIDs := make(map[string]bool, len(stored))
	for _, r := range stored {
		storedIDs[r.ID()] = true
		if _, ok := edited[r.ID()]; !ok {
			return nil, errors.NewNotFoundError("edited snapshot is missing a stored ticket", r.ID())
		}
	}
	for id := range edited {
		if !storedIDs[id] {
			return nil, errors.NewNotFoundError("edited snapshot references an unknown ticket", id)
		}
	}

	editable := ticket.ProjectColumns(role, uc.repo.Columns()).Editable

	var changed []string
	for _, r := range stored {
		row := edited[r.ID()]
		rowChanged := false

		for _, col := range editable {
			newValue, ok := row.Field(col)
			if !ok {
				continue
			}
			current, _ := r.Field(col)

			if col != ticket.ColumnStatus && col != ticket.ColumnPriority {
				newValue = uc.sanitizer.Sanitize(newValue)
			}
			if newValue == current {
				continue
			}

			// Values entering through the edit surface must sit in the
			// closed enum sets; untouched cells keep whatever an upload
			// put there.
			switch col {
			case ticket.ColumnStatus:
				if _, err := vo.NewStatus(newValue); err != nil {
					return nil, errors.NewValidationError(err.Error(), r.ID())
				}
			case ticket.ColumnPriority:
				if _, err := vo.NewPriority(newValue); err != nil {
					return nil, errors.NewValidationError(err.Error(), r.ID())
				}
			}

			if err := r.SetField(col, newValue); err != nil {
				return nil, errors.NewInternalError(err.Error())
			}
			rowChanged = true
		}

		// ID, Date Submitted and every non-editable column keep their
		// stored values: incoming values for them are ignored.
		if rowChanged {
			changed = append(changed, r.ID())
		}
	}

	if len(changed) > 0 {
		if err := uc.repo.ReplaceAll(stored); err != nil {
			uc.logger.Errorw("failed to commit reconciled table", "error", err)
			return nil, errors.NewInternalError("failed to commit edits", err.Error())
		}
	}

	uc.logger.Infow("edits reconciled", "changed", len(changed))

	return &ReconcileEditsResult{
		ChangedIDs: changed,
		Total:      len(stored),
	}, nil
}
