package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type AttachmentInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SubmitTicketCommand struct {
	Role       string
	Issue      string
	Priority   string
	CM         string
	PublicNote string
	Attachment *AttachmentInput
}

type SubmitTicketResult struct {
	ID            string
	Issue         string
	Status        string
	Priority      string
	DateSubmitted string
}

type SubmitTicketUseCase struct {
	repo      ticket.Repository
	blobs     ticket.BlobStore
	authz     RoleAuthorizer
	sanitizer *bluemonday.Policy
	logger    logger.Interface
	now       func() time.Time
}

func NewSubmitTicketUseCase(
	repo ticket.Repository,
	blobs ticket.BlobStore,
	authz RoleAuthorizer,
	log logger.Interface,
) *SubmitTicketUseCase {
	return &SubmitTicketUseCase{
		repo:      repo,
		blobs:     blobs,
		authz:     authz,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    log,
		now:       time.Now,
	}
}

func (uc *SubmitTicketUseCase) Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error) {
	uc.logger.Infow("executing submit ticket use case", "role", cmd.Role)

	role, err := vo.NewRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !uc.authz.CanSubmitTickets(role) {
		return nil, errors.NewForbiddenError("role does not permit submitting tickets")
	}

	issue := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Issue))
	if issue == "" {
		return nil, errors.NewValidationError("issue description is required")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// The next suffix is computed from the table's current max at
	// submission time, not a stored counter.
	suffix, err := uc.repo.NextIDSuffix()
	if err != nil {
		uc.logger.Errorw("failed to compute next ticket id", "error", err)
		return nil, errors.NewInternalError("ticket table contains a malformed id", err.Error())
	}
	id := ticket.FormatID(suffix)

	record, err := ticket.NewRecord(id, issue, vo.StatusOpen, priority, uc.now().Format(ticket.SubmitDateFormat))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := record.SetField(ticket.ColumnCM, uc.sanitizer.Sanitize(cmd.CM)); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if note := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.PublicNote)); note != "" {
		if err := record.SetField(ticket.ColumnPublicNotes, note); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
	}

	if cmd.Attachment != nil {
		att := ticket.Attachment{
			Filename:    cmd.Attachment.Filename,
			ContentType: cmd.Attachment.ContentType,
			Data:        cmd.Attachment.Data,
		}
		if err := uc.blobs.Put(id, att); err != nil {
			uc.logger.Errorw("failed to store attachment", "error", err, "ticket_id", id)
			return nil, errors.NewValidationError(err.Error())
		}
		if err := record.SetField(ticket.ColumnAttachedFile, cmd.Attachment.Filename); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
	}

	if err := uc.repo.Insert([]*ticket.Record{record}); err != nil {
		uc.logger.Errorw("failed to insert ticket", "error", err, "ticket_id", id)
		return nil, errors.NewInternalError("failed to insert ticket", err.Error())
	}

	uc.logger.Infow("ticket submitted", "ticket_id", id, "priority", priority.String())

	return &SubmitTicketResult{
		ID:            record.ID(),
		Issue:         record.Issue(),
		Status:        record.Status(),
		Priority:      record.Priority(),
		DateSubmitted: record.DateSubmitted(),
	}, nil
}
