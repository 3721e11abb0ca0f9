package usecases

import (
	"context"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
)

// RoleAuthorizer answers capability questions for a self-selected role.
// Implemented by the casbin-backed enforcer in shared/authorization.
type RoleAuthorizer interface {
	CanSubmitTickets(role vo.Role) bool
	CanUploadBatches(role vo.Role) bool
	CanEditTable(role vo.Role) bool
	CanAnnotate(role vo.Role) bool
}

type SubmitTicketExecutor interface {
	Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error)
}

type UploadBatchExecutor interface {
	Execute(ctx context.Context, cmd UploadBatchCommand) (*UploadBatchResult, error)
}

type ReconcileEditsExecutor interface {
	Execute(ctx context.Context, cmd ReconcileEditsCommand) (*ReconcileEditsResult, error)
}

type AddNotesExecutor interface {
	Execute(ctx context.Context, cmd AddNotesCommand) (*AddNotesResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error)
}

type GetAttachmentExecutor interface {
	Execute(ctx context.Context, query GetAttachmentQuery) (*GetAttachmentResult, error)
}
