package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
// Los comentarios viven en task_comments; los adjuntos en una columna JSONB.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// attachmentRow forma JSONB de un adjunto.
type attachmentRow struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toAttachmentRows(in []entity.Attachment) []attachmentRow {
	out := make([]attachmentRow, 0, len(in))
	for _, a := range in {
		out = append(out, attachmentRow(a))
	}
	return out
}

func fromAttachmentRows(in []attachmentRow) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment(a))
	}
	return out
}

// refCols columnas opcionales de un LEFT JOIN a users.
type refCols struct {
	id, first, last, email *string
}

func (c *refCols) dest() []any { return []any{&c.id, &c.first, &c.last, &c.email} }

func (c *refCols) ref() *entity.UserRef {
	if c.id == nil {
		return nil
	}
	return &entity.UserRef{ID: *c.id, FirstName: deref(c.first), LastName: deref(c.last), Email: deref(c.email)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.assigned_to, t.created_by,
		t.due_date, t.completed_at, t.progress, t.tags, t.attachments, t.created_at, t.updated_at,
		a.id, a.first_name, a.last_name, a.email,
		c.id, c.first_name, c.last_name, c.email
	FROM tasks t
	LEFT JOIN users a ON a.id = t.assigned_to
	LEFT JOIN users c ON c.id = t.created_by`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		t           entity.Task
		attachments []attachmentRow
		assignee    refCols
		creator     refCols
	)
	dest := []any{
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssignedTo, &t.CreatedBy,
		&t.DueDate, &t.CompletedAt, &t.Progress, &t.Tags, &attachments, &t.CreatedAt, &t.UpdatedAt,
	}
	dest = append(dest, assignee.dest()...)
	dest = append(dest, creator.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	t.Attachments = fromAttachmentRows(attachments)
	t.Assignee = assignee.ref()
	t.Creator = creator.ref()
	t.Comments = []entity.Comment{}
	return &t, nil
}

// Create persiste una tarea nueva con sus comentarios iniciales.
func (r *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, assigned_to, created_by,
			due_date, completed_at, progress, tags, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority, task.AssignedTo, task.CreatedBy,
		task.DueDate, task.CompletedAt, task.Progress, nonNilStrings(task.Tags),
		toAttachmentRows(task.Attachments), task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", translateError(err))
	}
	for i := range task.Comments {
		if err := r.insertComment(ctx, task.ID, &task.Comments[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una tarea con referencias y comentarios expandidos; (nil, nil) si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", translateError(err))
	}
	if err := r.loadComments(ctx, []*entity.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List lista tareas filtradas, más recientes primero.
func (r *TaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != "" {
		add("t.status = $%d", filter.Status)
	}
	if filter.Priority != "" {
		add("t.priority = $%d", filter.Priority)
	}
	if filter.AssignedTo != "" {
		add("t.assigned_to = $%d", filter.AssignedTo)
	}
	if filter.InvolvedUser != "" {
		args = append(args, filter.InvolvedUser)
		n := len(args)
		where = append(where, fmt.Sprintf("(t.created_by = $%d OR t.assigned_to = $%d)", n, n))
	}

	query := taskSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", translateError(err))
	}
	defer rows.Close()
	list := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", translateError(err))
	}
	if err := r.loadComments(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update reemplaza los campos editables. Los comentarios se agregan con AddComment.
func (r *TaskRepo) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5, assigned_to = $6,
			due_date = $7, completed_at = $8, progress = $9, tags = $10, attachments = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority, task.AssignedTo,
		task.DueDate, task.CompletedAt, task.Progress, nonNilStrings(task.Tags),
		toAttachmentRows(task.Attachments), task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", translateError(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Task")
	}
	return nil
}

// Delete elimina la tarea; sus comentarios caen por ON DELETE CASCADE.
func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", translateError(err))
	}
	return cmd.RowsAffected() > 0, nil
}

// AddComment agrega un comentario y actualiza updated_at de la tarea.
func (r *TaskRepo) AddComment(ctx context.Context, taskID string, comment *entity.Comment) error {
	if err := r.insertComment(ctx, taskID, comment); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, `UPDATE tasks SET updated_at = $2 WHERE id = $1`, taskID, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("touch task: %w", err)
	}
	return nil
}

func (r *TaskRepo) insertComment(ctx context.Context, taskID string, c *entity.Comment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO task_comments (id, task_id, user_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, taskID, c.UserID, c.Text, c.CreatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return domain.NotFound("Task")
		}
		return fmt.Errorf("insert comment: %w", translateError(err))
	}
	return nil
}

// loadComments carga los comentarios de todas las tareas en una sola consulta.
func (r *TaskRepo) loadComments(ctx context.Context, tasks []*entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tasks))
	byID := make(map[string]*entity.Task, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	rows, err := r.q.Query(ctx, `
		SELECT cm.task_id, cm.id, cm.user_id, cm.text, cm.created_at,
			u.id, u.first_name, u.last_name, u.email
		FROM task_comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.task_id = ANY($1::uuid[])
		ORDER BY cm.created_at`, ids)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			taskID string
			c      entity.Comment
			author refCols
		)
		dest := append([]any{&taskID, &c.ID, &c.UserID, &c.Text, &c.CreatedAt}, author.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		c.User = author.ref()
		if t, ok := byID[taskID]; ok {
			t.Comments = append(t.Comments, c)
		}
	}
	return rows.Err()
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
