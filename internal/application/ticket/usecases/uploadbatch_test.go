package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaleeCh/support-tickets/internal/application/ticket/testutil"
	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
)

func TestUploadBatch_AssignsSequentialIDs(t *testing.T) {
	repo := newStoreWith(t, mustRecord(t, "TICKET-1100", "existing", "Open", "High", "2023-07-02", nil))
	uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

	csv := []byte("Issue,Priority\nNetwork down,High\nVPN flaky,Medium\nPrinter jam,Low\n")
	result, err := uc.Execute(context.Background(), UploadBatchCommand{
		Role:     "branch_manager",
		Filename: "batch.csv",
		Content:  csv,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "TICKET-1101", result.Records[0].ID)
	assert.Equal(t, "TICKET-1102", result.Records[1].ID)
	assert.Equal(t, "TICKET-1103", result.Records[2].ID)

	_, err = uuid.Parse(result.BatchID)
	assert.NoError(t, err)

	// Batch goes on top in file order, ahead of existing rows.
	assert.Equal(t, []string{"TICKET-1101", "TICKET-1102", "TICKET-1103", "TICKET-1100"}, snapshotIDs(repo))

	stored, err := repo.GetByID("TICKET-1102")
	require.NoError(t, err)
	assert.Equal(t, "VPN flaky", stored.Issue())
	assert.Equal(t, "Medium", stored.Priority())
}

func TestUploadBatch_DryRunMutatesNothing(t *testing.T) {
	repo := newStoreWith(t, mustRecord(t, "TICKET-1100", "existing", "Open", "High", "2023-07-02", nil))
	uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

	csv := []byte("Issue\nfirst\nsecond\n")
	result, err := uc.Execute(context.Background(), UploadBatchCommand{
		Role:     "branch_manager",
		Filename: "batch.csv",
		Content:  csv,
		DryRun:   true,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "TICKET-1101", result.Records[0].ID)
	assert.Equal(t, "TICKET-1102", result.Records[1].ID)
	assert.Equal(t, 1, repo.Count())
}

func TestUploadBatch_HonorsSuppliedIDs(t *testing.T) {
	repo := newStoreWith(t)
	uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

	csv := []byte("ID,Issue\nTICKET-2000,Big outage\n")
	result, err := uc.Execute(context.Background(), UploadBatchCommand{
		Role:     "branch_manager",
		Filename: "batch.csv",
		Content:  csv,
	})
	require.NoError(t, err)

	assert.Equal(t, "TICKET-2000", result.Records[0].ID)

	suffix, err := repo.NextIDSuffix()
	require.NoError(t, err)
	assert.Equal(t, 2001, suffix)
}

func TestUploadBatch_CaseInsensitiveCoreHeaders(t *testing.T) {
	repo := newStoreWith(t)
	uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

	csv := []byte("issue,PRIORITY,Status\nemail down,High,Open\n")
	result, err := uc.Execute(context.Background(), UploadBatchCommand{
		Role:     "branch_manager",
		Filename: "batch.csv",
		Content:  csv,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(result.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "email down", stored.Issue())
	assert.Equal(t, "High", stored.Priority())
	assert.Equal(t, "Open", stored.Status())
	assert.Empty(t, stored.ExtraColumns())
}

func TestUploadBatch_ExtraColumnsJoinTheTable(t *testing.T) {
	repo := newStoreWith(t, mustRecord(t, "TICKET-1100", "existing", "Open", "High", "2023-07-02", nil))
	uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

	csv := []byte("Issue,Region\nWest office down,West\n")
	_, err := uc.Execute(context.Background(), UploadBatchCommand{
		Role:     "branch_manager",
		Filename: "batch.csv",
		Content:  csv,
	})
	require.NoError(t, err)

	assert.Contains(t, repo.Columns(), "Region")

	// Pre-existing rows are backfilled with the empty default.
	existing, err := repo.GetByID("TICKET-1100")
	require.NoError(t, err)
	v, ok := existing.Field("Region")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestUploadBatch_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantType errors.ErrorType
	}{
		{name: "unparseable csv", filename: "batch.csv", content: "Issue\n\"broken\n", wantType: errors.ErrorTypeBadRequest},
		{name: "unsupported extension", filename: "batch.pdf", content: "Issue\nx\n", wantType: errors.ErrorTypeBadRequest},
		{name: "header only", filename: "batch.csv", content: "Issue,Status\n", wantType: errors.ErrorTypeBadRequest},
		{name: "malformed supplied id", filename: "batch.csv", content: "ID,Issue\nBAD-1,outage\n", wantType: errors.ErrorTypeBadRequest},
		{name: "duplicate id within file", filename: "batch.csv", content: "ID,Issue\nTICKET-2000,a\nTICKET-2000,b\n", wantType: errors.ErrorTypeConflict},
		{name: "id collides with table", filename: "batch.csv", content: "ID,Issue\nTICKET-1100,outage\n", wantType: errors.ErrorTypeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStoreWith(t, mustRecord(t, "TICKET-1100", "existing", "Open", "High", "2023-07-02", nil))
			uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

			_, err := uc.Execute(context.Background(), UploadBatchCommand{
				Role:     "branch_manager",
				Filename: tt.filename,
				Content:  []byte(tt.content),
			})
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr, "expected an application error, got %v", err)
			assert.Equal(t, tt.wantType, appErr.Type)

			// A rejected upload adds nothing.
			assert.Equal(t, 1, repo.Count())
			assert.Equal(t, ticket.CoreColumns(), repo.Columns())
		})
	}
}

func TestUploadBatch_ForbiddenRoles(t *testing.T) {
	for _, role := range []string{"cm_staff", "supervisor"} {
		t.Run(role, func(t *testing.T) {
			repo := newStoreWith(t)
			uc := NewUploadBatchUseCase(repo, testutil.NewMockAuthorizer(), testutil.NewMockLogger())

			_, err := uc.Execute(context.Background(), UploadBatchCommand{
				Role:     role,
				Filename: "batch.csv",
				Content:  []byte("Issue\nx\n"),
			})
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
		})
	}
}
