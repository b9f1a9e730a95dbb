package dto

import (
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// AttachmentDTO metadatos de adjunto.
type AttachmentDTO struct {
	Filename   string    `json:"filename" validate:"required"`
	URL        string    `json:"url" validate:"required"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size" validate:"min=0"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// CreateTaskRequest entrada de POST /api/tasks.
type CreateTaskRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Status      string          `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *string         `json:"assignedTo" validate:"omitempty,uuid"`
	DueDate     *time.Time      `json:"dueDate"`
	Progress    int             `json:"progress" validate:"min=0,max=100"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,max=50"`
	Attachments []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`
}

// UpdateTaskRequest actualización parcial; el resultado se revalida contra la entidad.
// dueDate admite null para quitar la fecha límite.
type UpdateTaskRequest struct {
	Title       *string             `json:"title" validate:"omitempty,max=100"`
	Description *string             `json:"description" validate:"omitempty,max=500"`
	Status      *string             `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    *string             `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *string             `json:"assignedTo" validate:"omitempty,uuid"`
	DueDate     Nullable[time.Time] `json:"dueDate"`
	Progress    *int                `json:"progress" validate:"omitempty,min=0,max=100"`
	Tags        []string            `json:"tags" validate:"omitempty,dive,max=50"`
	Attachments *[]AttachmentDTO    `json:"attachments" validate:"omitempty,dive"`
}

// AddCommentRequest POST /api/tasks/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// TaskListQuery filtros de GET /api/tasks.
type TaskListQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority   string `query:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo string `query:"assignedTo" validate:"omitempty,uuid"`
	Mine       bool   `query:"mine"`
}

// CommentResponse comentario con autor expandido.
type CommentResponse struct {
	ID        string           `json:"id"`
	User      *UserRefResponse `json:"user"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"createdAt"`
}

// TaskResponse salida de una tarea con derivados.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AssignedTo  *UserRefResponse  `json:"assignedTo"`
	CreatedBy   *UserRefResponse  `json:"createdBy"`
	DueDate     *time.Time        `json:"dueDate"`
	CompletedAt *time.Time        `json:"completedAt"`
	Progress    int               `json:"progress"`
	Tags        []string          `json:"tags"`
	Comments    []CommentResponse `json:"comments"`
	Attachments []AttachmentDTO   `json:"attachments"`
	StatusColor string            `json:"statusColor"`
	IsOverdue   bool              `json:"isOverdue"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToTaskResponse proyecta la entidad calculando derivados contra now.
func ToTaskResponse(t *entity.Task, now time.Time) TaskResponse {
	out := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  ToUserRef(t.Assignee),
		CreatedBy:   ToUserRef(t.Creator),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Progress:    t.Progress,
		Tags:        t.Tags,
		Comments:    make([]CommentResponse, 0, len(t.Comments)),
		Attachments: ToAttachmentDTOs(t.Attachments),
		StatusColor: t.StatusColor(),
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	// Referencias débiles: si el usuario ya no existe se conserva al menos el id.
	if out.AssignedTo == nil && t.AssignedTo != nil {
		out.AssignedTo = &UserRefResponse{ID: *t.AssignedTo}
	}
	if out.CreatedBy == nil && t.CreatedBy != "" {
		out.CreatedBy = &UserRefResponse{ID: t.CreatedBy}
	}
	for _, c := range t.Comments {
		user := ToUserRef(c.User)
		if user == nil {
			user = &UserRefResponse{ID: c.UserID}
		}
		out.Comments = append(out.Comments, CommentResponse{ID: c.ID, User: user, Text: c.Text, CreatedAt: c.CreatedAt})
	}
	return out
}

// ToTaskResponses proyecta una lista.
func ToTaskResponses(list []*entity.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTaskResponse(t, now))
	}
	return out
}

// ToAttachmentDTOs proyecta adjuntos.
func ToAttachmentDTOs(in []entity.Attachment) []AttachmentDTO {
	out := make([]AttachmentDTO, 0, len(in))
	for _, a := range in {
		out = append(out, AttachmentDTO{Filename: a.Filename, URL: a.URL, MimeType: a.MimeType, Size: a.Size, UploadedAt: a.UploadedAt})
	}
	return out
}

// ToAttachments convierte la entrada en entidades, sellando uploadedAt si falta.
func ToAttachments(in []AttachmentDTO, now time.Time) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		at := a.UploadedAt
		if at.IsZero() {
			at = now
		}
		out = append(out, entity.Attachment{Filename: a.Filename, URL: a.URL, MimeType: a.MimeType, Size: a.Size, UploadedAt: at})
	}
	return out
}
