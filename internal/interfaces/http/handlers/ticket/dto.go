package ticket

import (
	"github.com/go-playground/validator/v10"

	ticketdto "github.com/ChaleeCh/support-tickets/internal/application/ticket/dto"
	"github.com/ChaleeCh/support-tickets/internal/application/ticket/usecases"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
)

type SubmitTicketRequest struct {
	Issue      string `form:"issue" json:"issue" binding:"required"`
	Priority   string `form:"priority" json:"priority" binding:"required,ticketpriority"`
	CM         string `form:"cm" json:"cm"`
	PublicNote string `form:"public_note" json:"public_note"`
}

func (r SubmitTicketRequest) ToCommand(role string, attachment *usecases.AttachmentInput) usecases.SubmitTicketCommand {
	return usecases.SubmitTicketCommand{
		Role:       role,
		Issue:      r.Issue,
		Priority:   r.Priority,
		CM:         r.CM,
		PublicNote: r.PublicNote,
		Attachment: attachment,
	}
}

type RecordPayload struct {
	ID            string            `json:"id" binding:"required"`
	Issue         string            `json:"issue"`
	Status        string            `json:"status"`
	Priority      string            `json:"priority"`
	DateSubmitted string            `json:"date_submitted"`
	Extras        map[string]string `json:"extras"`
}

func (p RecordPayload) toDTO() ticketdto.RecordDTO {
	return ticketdto.RecordDTO{
		ID:            p.ID,
		Issue:         p.Issue,
		Status:        p.Status,
		Priority:      p.Priority,
		DateSubmitted: p.DateSubmitted,
		Extras:        p.Extras,
	}
}

type ReconcileRequest struct {
	Rows []RecordPayload `json:"rows" binding:"required,min=1,dive"`
}

func (r ReconcileRequest) ToCommand(role string) usecases.ReconcileEditsCommand {
	cmd := usecases.ReconcileEditsCommand{Role: role}
	for _, row := range r.Rows {
		cmd.Rows = append(cmd.Rows, row.toDTO())
	}
	return cmd
}

type AddNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// RegisterValidations wires the enum validators used by the binding tags
// above into gin's validator engine.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("ticketpriority", func(fl validator.FieldLevel) bool {
		_, err := vo.NewPriority(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("ticketstatus", func(fl validator.FieldLevel) bool {
		_, err := vo.NewStatus(fl.Field().String())
		return err == nil
	})
}
