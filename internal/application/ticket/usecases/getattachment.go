package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	apperrors "github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type GetAttachmentQuery struct {
	TicketID string
}

type GetAttachmentResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GetAttachmentUseCase serves a stored blob back with its original
// filename and content type. A row that names an attached file whose
// bytes are no longer held (for example after an import that carried
// only the filename column) gets a synthesized plain-text description
// instead.
type GetAttachmentUseCase struct {
	repo   ticket.Repository
	blobs  ticket.BlobStore
	logger logger.Interface
}

func NewGetAttachmentUseCase(repo ticket.Repository, blobs ticket.BlobStore, log logger.Interface) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		repo:   repo,
		blobs:  blobs,
		logger: log,
	}
}

func (uc *GetAttachmentUseCase) Execute(ctx context.Context, query GetAttachmentQuery) (*GetAttachmentResult, error) {
	record, err := uc.repo.GetByID(query.TicketID)
	if err != nil {
		var unknown *ticket.UnknownIDError
		if errors.As(err, &unknown) {
			return nil, apperrors.NewNotFoundError("ticket not found", query.TicketID)
		}
		return nil, apperrors.NewInternalError("failed to look up ticket", err.Error())
	}

	if att, ok := uc.blobs.Get(query.TicketID); ok {
		return &GetAttachmentResult{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Data:        att.Data,
		}, nil
	}

	filename, _ := record.Field(ticket.ColumnAttachedFile)
	if filename == "" {
		return nil, apperrors.NewNotFoundError("ticket has no attachment", query.TicketID)
	}

	uc.logger.Warnw("attachment bytes not retained, serving description", "ticket_id", query.TicketID, "filename", filename)

	body := fmt.Sprintf("Attachment %q for ticket %s is recorded but its contents are not retained in this session.\n", filename, query.TicketID)
	return &GetAttachmentResult{
		Filename:    filename + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(body),
	}, nil
}
