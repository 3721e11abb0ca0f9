package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	apperrors "github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type AddNotesCommand struct {
	Role     string
	TicketID string
	Notes    string
}

type AddNotesResult struct {
	TicketID string
	Column   string
}

// AddNotesUseCase writes a single notes field by ID lookup. The target
// column depends on the role: staff write internal notes, submitters
// write the shared public notes.
type AddNotesUseCase struct {
	repo      ticket.Repository
	authz     RoleAuthorizer
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewAddNotesUseCase(repo ticket.Repository, authz RoleAuthorizer, log logger.Interface) *AddNotesUseCase {
	return &AddNotesUseCase{
		repo:      repo,
		authz:     authz,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    log,
	}
}

func (uc *AddNotesUseCase) Execute(ctx context.Context, cmd AddNotesCommand) (*AddNotesResult, error) {
	uc.logger.Infow("executing add notes use case", "role", cmd.Role, "ticket_id", cmd.TicketID)

	role, err := vo.NewRole(cmd.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !uc.authz.CanAnnotate(role) {
		return nil, apperrors.NewForbiddenError("role does not permit adding notes")
	}

	column, ok := ticket.NotesColumn(role)
	if !ok {
		return nil, apperrors.NewForbiddenError("role has no notes column")
	}

	notes := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Notes))
	if notes == "" {
		return nil, apperrors.NewValidationError("notes text is required")
	}

	if err := uc.repo.SetField(cmd.TicketID, column, notes); err != nil {
		var unknown *ticket.UnknownIDError
		if errors.As(err, &unknown) {
			return nil, apperrors.NewNotFoundError("ticket not found", cmd.TicketID)
		}
		uc.logger.Errorw("failed to write notes", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewInternalError("failed to write notes", err.Error())
	}

	uc.logger.Infow("notes added", "ticket_id", cmd.TicketID, "column", column)

	return &AddNotesResult{
		TicketID: cmd.TicketID,
		Column:   column,
	}, nil
}
