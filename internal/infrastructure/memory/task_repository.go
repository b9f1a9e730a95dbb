package memory

import (
	"context"
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo tareas en memoria.
type TaskRepo struct {
	s *Store
}

func cloneTask(t *entity.Task) *entity.Task {
	c := *t
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	c.DueDate = cloneTime(t.DueDate)
	c.CompletedAt = cloneTime(t.CompletedAt)
	c.Tags = append([]string{}, t.Tags...)
	c.Comments = append([]entity.Comment{}, t.Comments...)
	c.Attachments = append([]entity.Attachment{}, t.Attachments...)
	c.Assignee, c.Creator = nil, nil
	return &c
}

// expand requiere s.mu tomado.
func (r *TaskRepo) expand(t *entity.Task) *entity.Task {
	c := cloneTask(t)
	if c.AssignedTo != nil {
		c.Assignee = r.s.userRef(*c.AssignedTo)
	}
	c.Creator = r.s.userRef(c.CreatedBy)
	for i := range c.Comments {
		c.Comments[i].User = r.s.userRef(c.Comments[i].UserID)
	}
	return c
}

// Create persiste una tarea nueva.
func (r *TaskRepo) Create(_ context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[task.ID] = cloneTask(task)
	return nil
}

// GetByID devuelve la tarea expandida o (nil, nil).
func (r *TaskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.tasks[id]; ok {
		return r.expand(t), nil
	}
	return nil, nil
}

// List aplica los filtros; más recientes primero.
func (r *TaskRepo) List(_ context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Task, 0)
	for _, t := range r.s.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
			continue
		}
		if f.InvolvedUser != "" && t.CreatedBy != f.InvolvedUser && (t.AssignedTo == nil || *t.AssignedTo != f.InvolvedUser) {
			continue
		}
		out = append(out, r.expand(t))
	}
	sortNewestFirst(out, func(t *entity.Task) time.Time { return t.CreatedAt }, func(t *entity.Task) string { return t.ID })
	return out, nil
}

// Update reemplaza la tarea completa.
func (r *TaskRepo) Update(_ context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[task.ID]; !ok {
		return domain.NotFound("Task")
	}
	r.s.tasks[task.ID] = cloneTask(task)
	return nil
}

// Delete elimina la tarea y sus comentarios.
func (r *TaskRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return false, nil
	}
	delete(r.s.tasks, id)
	return true, nil
}

// AddComment agrega un comentario al final.
func (r *TaskRepo) AddComment(_ context.Context, taskID string, c *entity.Comment) error {
	if err := checkID(taskID); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[taskID]
	if !ok {
		return domain.NotFound("Task")
	}
	cc := *c
	cc.User = nil
	t.Comments = append(t.Comments, cc)
	t.UpdatedAt = c.CreatedAt
	return nil
}
