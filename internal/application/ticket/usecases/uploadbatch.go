package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	ticketdto "github.com/ChaleeCh/support-tickets/internal/application/ticket/dto"
	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/infrastructure/tabular"
	apperrors "github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

type UploadBatchCommand struct {
	Role     string
	Filename string
	Content  []byte
	// DryRun decodes and assigns IDs but mutates nothing, mirroring the
	// preview step before the user confirms the upload.
	DryRun bool
}

type UploadBatchResult struct {
	BatchID string
	Count   int
	Records []ticketdto.RecordDTO
	DryRun  bool
}

type UploadBatchUseCase struct {
	repo   ticket.Repository
	logger logger.Interface
	authz  RoleAuthorizer
}

func NewUploadBatchUseCase(repo ticket.Repository, authz RoleAuthorizer, log logger.Interface) *UploadBatchUseCase {
	return &UploadBatchUseCase{
		repo:   repo,
		authz:  authz,
		logger: log,
	}
}

func (uc *UploadBatchUseCase) Execute(ctx context.Context, cmd UploadBatchCommand) (*UploadBatchResult, error) {
	uc.logger.Infow("executing upload batch use case", "role", cmd.Role, "filename", cmd.Filename, "dry_run", cmd.DryRun)

	role, err := vo.NewRole(cmd.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !uc.authz.CanUploadBatches(role) {
		return nil, apperrors.NewForbiddenError("role does not permit uploading batches")
	}

	table, err := tabular.Decode(cmd.Filename, cmd.Content)
	if err != nil {
		var parseErr *tabular.ParseError
		if errors.As(err, &parseErr) {
			uc.logger.Warnw("rejected unparseable upload", "error", err, "filename", cmd.Filename)
			return nil, apperrors.NewBadRequestError("could not read the uploaded file", parseErr.Err.Error())
		}
		return nil, apperrors.NewInternalError("upload decode failed", err.Error())
	}
	if len(table.Rows) == 0 {
		return nil, apperrors.NewBadRequestError("uploaded file contains no data rows")
	}

	records, err := uc.buildRecords(table)
	if err != nil {
		return nil, err
	}

	result := &UploadBatchResult{
		BatchID: uuid.NewString(),
		Count:   len(records),
		DryRun:  cmd.DryRun,
	}
	for _, r := range records {
		result.Records = append(result.Records, ticketdto.FromRecord(r))
	}

	if cmd.DryRun {
		return result, nil
	}

	if err := uc.repo.Insert(records); err != nil {
		uc.logger.Errorw("failed to insert uploaded batch", "error", err, "batch_id", result.BatchID)
		var dup *ticket.DuplicateIDError
		if errors.As(err, &dup) {
			return nil, apperrors.NewConflictError("uploaded batch collides with existing tickets", dup.Error())
		}
		return nil, apperrors.NewInternalError("failed to insert uploaded batch", err.Error())
	}

	uc.logger.Infow("batch uploaded", "batch_id", result.BatchID, "count", result.Count)
	return result, nil
}

// buildRecords maps decoded rows onto records. Core columns are matched
// case-insensitively; everything else becomes an extra column under its
// original header.
func (uc *UploadBatchUseCase) buildRecords(table *tabular.Table) ([]*ticket.Record, error) {
	canonical := map[string]string{
		"id":             ticket.ColumnID,
		"issue":          ticket.ColumnIssue,
		"status":         ticket.ColumnStatus,
		"priority":       ticket.ColumnPriority,
		"date submitted": ticket.ColumnDateSubmitted,
	}

	headers := make([]string, len(table.Headers))
	hasIDColumn := false
	for i, h := range table.Headers {
		if name, ok := canonical[strings.ToLower(h)]; ok {
			headers[i] = name
			if name == ticket.ColumnID {
				hasIDColumn = true
			}
		} else {
			headers[i] = h
		}
	}

	ids, err := uc.resolveIDs(table, headers, hasIDColumn)
	if err != nil {
		return nil, err
	}

	records := make([]*ticket.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		var issue, status, priority, date string
		extras := make(map[string]string)
		for j, name := range headers {
			switch name {
			case ticket.ColumnID:
				// Resolved above.
			case ticket.ColumnIssue:
				issue = row[j]
			case ticket.ColumnStatus:
				status = row[j]
			case ticket.ColumnPriority:
				priority = row[j]
			case ticket.ColumnDateSubmitted:
				date = row[j]
			default:
				extras[name] = row[j]
			}
		}

		r, err := ticket.ReconstructRecord(ids[i], issue, status, priority, date, extras)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid ticket id in uploaded file", err.Error())
		}
		records = append(records, r)
	}
	return records, nil
}

// resolveIDs either validates the payload's own ID column or assigns
// sequential suffixes. The base suffix is computed once for the whole
// batch so rows within one upload can never collide with each other.
func (uc *UploadBatchUseCase) resolveIDs(table *tabular.Table, headers []string, hasIDColumn bool) ([]string, error) {
	ids := make([]string, len(table.Rows))

	if !hasIDColumn {
		base, err := uc.repo.NextIDSuffix()
		if err != nil {
			return nil, apperrors.NewInternalError("ticket table contains a malformed id", err.Error())
		}
		for i := range table.Rows {
			ids[i] = ticket.FormatID(base + i)
		}
		return ids, nil
	}

	idCol := -1
	for j, name := range headers {
		if name == ticket.ColumnID {
			idCol = j
			break
		}
	}

	seen := make(map[string]bool, len(table.Rows))
	for i, row := range table.Rows {
		id := row[idCol]
		if _, err := ticket.ParseSuffix(id); err != nil {
			return nil, apperrors.NewBadRequestError("invalid ticket id in uploaded file", err.Error())
		}
		if seen[id] {
			return nil, apperrors.NewConflictError("duplicate ticket id in uploaded file", id)
		}
		seen[id] = true
		if _, err := uc.repo.GetByID(id); err == nil {
			return nil, apperrors.NewConflictError("uploaded ticket id already exists", id)
		}
		ids[i] = id
	}
	return ids, nil
}
