package entity

import (
	"time"
	"unicode/utf8"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

// Estados de una tarea.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

// Prioridades de una tarea.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Límites de longitud.
const (
	TaskTitleMax       = 100
	TaskDescriptionMax = 500
	CommentTextMax     = 500
)

var statusColors = map[string]string{
	TaskPending:    "#ffc107",
	TaskInProgress: "#17a2b8",
	TaskCompleted:  "#28a745",
	TaskCancelled:  "#dc3545",
}

// ValidTaskStatus indica si s pertenece al enum de estados.
func ValidTaskStatus(s string) bool {
	_, ok := statusColors[s]
	return ok
}

// ValidTaskPriority indica si p pertenece al enum de prioridades.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Comment comentario de una tarea; se elimina con ella.
type Comment struct {
	ID        string
	UserID    string
	User      *UserRef
	Text      string
	CreatedAt time.Time
}

// Attachment metadatos de un adjunto (el archivo no se almacena aquí).
type Attachment struct {
	Filename   string
	URL        string
	MimeType   string
	Size       int64
	UploadedAt time.Time
}

// Task unidad de trabajo. AssignedTo y CreatedBy son referencias débiles por ID.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  *string
	CreatedBy   string
	DueDate     *time.Time
	CompletedAt *time.Time
	Progress    int
	Tags        []string
	Comments    []Comment
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Expandidos en lectura.
	Assignee *UserRef
	Creator  *UserRef
}

// ApplyDefaults completa status y prioridad vacíos.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TaskPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// Normalize aplica las reglas de estado antes de persistir, en este orden:
// progreso 100 completa; progreso parcial saca de pending; completedAt sigue al estado.
func (t *Task) Normalize(now time.Time) {
	if t.Progress == 100 {
		t.Status = TaskCompleted
	}
	if t.Progress > 0 && t.Status == TaskPending {
		t.Status = TaskInProgress
	}
	if t.Status == TaskCompleted {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
	} else {
		t.CompletedAt = nil
	}
}

// StatusColor color de UI asociado al estado.
func (t *Task) StatusColor() string {
	return statusColors[t.Status]
}

// IsOverdue vencida y aún abierta.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskCompleted || t.Status == TaskCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// Validate revisa el esquema completo; se usa en create y tras un update parcial.
func (t *Task) Validate() error {
	v := &domain.ValidationError{}
	switch n := utf8.RuneCountInString(t.Title); {
	case n == 0:
		v.Add("title", "Task title is required")
	case n > TaskTitleMax:
		v.Add("title", "Task title cannot exceed %d characters", TaskTitleMax)
	}
	if utf8.RuneCountInString(t.Description) > TaskDescriptionMax {
		v.Add("description", "Description cannot exceed %d characters", TaskDescriptionMax)
	}
	if !ValidTaskStatus(t.Status) {
		v.Add("status", "Status must be one of: pending, in-progress, completed, cancelled")
	}
	if !ValidTaskPriority(t.Priority) {
		v.Add("priority", "Priority must be one of: low, medium, high, urgent")
	}
	if t.Progress < 0 || t.Progress > 100 {
		v.Add("progress", "Progress must be between 0 and 100")
	}
	for _, c := range t.Comments {
		if utf8.RuneCountInString(c.Text) > CommentTextMax {
			v.Add("comments", "Comment cannot exceed %d characters", CommentTextMax)
			break
		}
	}
	return v.OrNil()
}
