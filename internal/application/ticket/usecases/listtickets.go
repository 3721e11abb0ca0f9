package usecases

import (
	"context"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type ListTicketsQuery struct {
	Role string
}

type ListTicketsResult struct {
	Columns   []string
	Editable  []string
	CanSubmit bool
	CanUpload bool
	Rows      []map[string]string
	Total     int
}

// ListTicketsUseCase produces the role-scoped view of the table:
// most-recent-first rows restricted to the columns the role may see.
type ListTicketsUseCase struct {
	repo   ticket.Repository
	logger logger.Interface
}

func NewListTicketsUseCase(repo ticket.Repository, log logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Debugw("executing list tickets use case", "role", query.Role)

	role, err := vo.NewRole(query.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	policy := ticket.ProjectColumns(role, uc.repo.Columns())
	snapshot := uc.repo.Snapshot()

	rows := make([]map[string]string, 0, len(snapshot))
	for _, r := range snapshot {
		row := make(map[string]string, len(policy.Visible))
		for _, col := range policy.Visible {
			if v, ok := r.Field(col); ok {
				row[col] = v
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &ListTicketsResult{
		Columns:   policy.Visible,
		Editable:  policy.Editable,
		CanSubmit: policy.CanSubmit,
		CanUpload: policy.CanUpload,
		Rows:      rows,
		Total:     len(rows),
	}, nil
}
