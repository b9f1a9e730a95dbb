package repository

import (
	"context"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// TaskFilter filtros del listado de tareas. Campos vacíos no filtran.
type TaskFilter struct {
	Status     string
	Priority   string
	AssignedTo string
	// InvolvedUser tareas creadas por o asignadas a este usuario.
	InvolvedUser string
}

// TaskRepository puerto de persistencia para Task.
// Las lecturas devuelven referencias (assignee, creator, autor de comentario) expandidas.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, taskID string, comment *entity.Comment) error
}
