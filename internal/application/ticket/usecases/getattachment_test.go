package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaleeCh/support-tickets/internal/application/ticket/testutil"
	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	"github.com/ChaleeCh/support-tickets/internal/infrastructure/store"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
)

func TestGetAttachment_ServesStoredBlob(t *testing.T) {
	repo := newStoreWith(t, mustRecord(t, "TICKET-1101", "screen artifact", "Open", "Low", "03-15-2024",
		map[string]string{ticket.ColumnAttachedFile: "artifact.png"}))
	blobs := store.NewMemoryBlobStore()
	require.NoError(t, blobs.Put("TICKET-1101", ticket.Attachment{
		Filename:    "artifact.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	}))

	uc := NewGetAttachmentUseCase(repo, blobs, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetAttachmentQuery{TicketID: "TICKET-1101"})
	require.NoError(t, err)

	assert.Equal(t, "artifact.png", result.Filename)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, result.Data)
}

func TestGetAttachment_SynthesizesWhenBytesMissing(t *testing.T) {
	// An imported row can name a file whose bytes were never uploaded.
	repo := newStoreWith(t, mustRecord(t, "TICKET-1102", "imported", "Open", "Low", "2023-08-01",
		map[string]string{ticket.ColumnAttachedFile: "photo.jpg"}))

	uc := NewGetAttachmentUseCase(repo, store.NewMemoryBlobStore(), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetAttachmentQuery{TicketID: "TICKET-1102"})
	require.NoError(t, err)

	assert.Equal(t, "photo.jpg.txt", result.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", result.ContentType)
	assert.Contains(t, string(result.Data), "photo.jpg")
	assert.Contains(t, string(result.Data), "TICKET-1102")
}

func TestGetAttachment_NoAttachment(t *testing.T) {
	repo := newStoreWith(t, mustRecord(t, "TICKET-1103", "plain ticket", "Open", "Low", "2023-08-01", nil))

	uc := NewGetAttachmentUseCase(repo, store.NewMemoryBlobStore(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), GetAttachmentQuery{TicketID: "TICKET-1103"})
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)
}

func TestGetAttachment_UnknownTicket(t *testing.T) {
	uc := NewGetAttachmentUseCase(newStoreWith(t), store.NewMemoryBlobStore(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), GetAttachmentQuery{TicketID: "TICKET-404"})
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)
}
