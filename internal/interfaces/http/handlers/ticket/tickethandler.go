package ticket

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChaleeCh/support-tickets/internal/application/ticket/usecases"
	"github.com/ChaleeCh/support-tickets/internal/shared/authorization"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
	"github.com/ChaleeCh/support-tickets/internal/shared/utils"
)

type TicketHandler struct {
	submitUC       usecases.SubmitTicketExecutor
	uploadUC       usecases.UploadBatchExecutor
	reconcileUC    usecases.ReconcileEditsExecutor
	addNotesUC     usecases.AddNotesExecutor
	listUC         usecases.ListTicketsExecutor
	statsUC        usecases.GetTicketStatsExecutor
	attachmentUC   usecases.GetAttachmentExecutor
	maxUploadBytes int64
	logger         logger.Interface
}

func NewTicketHandler(
	submitUC usecases.SubmitTicketExecutor,
	uploadUC usecases.UploadBatchExecutor,
	reconcileUC usecases.ReconcileEditsExecutor,
	addNotesUC usecases.AddNotesExecutor,
	listUC usecases.ListTicketsExecutor,
	statsUC usecases.GetTicketStatsExecutor,
	attachmentUC usecases.GetAttachmentExecutor,
	maxUploadBytes int64,
) *TicketHandler {
	return &TicketHandler{
		submitUC:       submitUC,
		uploadUC:       uploadUC,
		reconcileUC:    reconcileUC,
		addNotesUC:     addNotesUC,
		listUC:         listUC,
		statsUC:        statsUC,
		attachmentUC:   attachmentUC,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.NewLogger(),
	}
}

func requestRole(c *gin.Context) (string, bool) {
	role, ok := authorization.RoleFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "role is required")
		return "", false
	}
	return role.String(), true
}

// SubmitTicket handles POST /api/tickets. Accepts JSON, or multipart form
// data when the submission carries an attachment.
func (h *TicketHandler) SubmitTicket(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req SubmitTicketRequest
	var attachment *usecases.AttachmentInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			h.logger.Warnw("invalid submit ticket form", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "issue and a valid priority are required")
			return
		}
		if fileHeader, err := c.FormFile("attachment"); err == nil {
			if fileHeader.Size > h.maxUploadBytes {
				utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "attachment exceeds the size limit")
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "could not read attachment")
				return
			}
			data, err := io.ReadAll(file)
			_ = file.Close()
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "could not read attachment")
				return
			}
			attachment = &usecases.AttachmentInput{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid submit ticket body", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "issue and a valid priority are required")
			return
		}
	}

	result, err := h.submitUC.Execute(c.Request.Context(), req.ToCommand(role, attachment))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket submitted successfully")
}

// UploadBatch handles POST /api/tickets/upload.
func (h *TicketHandler) UploadBatch(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "a file field is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	content, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	cmd := usecases.UploadBatchCommand{
		Role:     role,
		Filename: fileHeader.Filename,
		Content:  content,
		DryRun:   c.PostForm("dry_run") == "true",
	}

	result, err := h.uploadUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.DryRun {
		utils.SuccessResponse(c, http.StatusOK, "Preview only, no tickets added", result)
		return
	}
	utils.CreatedResponse(c, result, fmt.Sprintf("Successfully added %d tickets", result.Count))
}

// ListTickets handles GET /api/tickets.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{Role: role})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ReconcileEdits handles PUT /api/tickets.
func (h *TicketHandler) ReconcileEdits(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid reconcile body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "rows with ids are required")
		return
	}

	result, err := h.reconcileUC.Execute(c.Request.Context(), req.ToCommand(role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "No changes detected"
	if len(result.ChangedIDs) > 0 {
		message = fmt.Sprintf("Updated %s", strings.Join(result.ChangedIDs, ", "))
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// AddNotes handles POST /api/tickets/:id/notes.
func (h *TicketHandler) AddNotes(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req AddNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "notes text is required")
		return
	}

	cmd := usecases.AddNotesCommand{
		Role:     role,
		TicketID: c.Param("id"),
		Notes:    req.Notes,
	}

	result, err := h.addNotesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Notes added to %s", result.TicketID), result)
}

// DownloadAttachment handles GET /api/tickets/:id/attachment.
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	result, err := h.attachmentUC.Execute(c.Request.Context(), usecases.GetAttachmentQuery{
		TicketID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// GetStats handles GET /api/stats.
func (h *TicketHandler) GetStats(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{Role: role})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
