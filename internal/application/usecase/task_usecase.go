package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/validation"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/pkg/sanitize"
)

// TaskUseCase CRUD de tareas con normalización de estado y referencias expandidas.
type TaskUseCase struct {
	repo  repository.TaskRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, users repository.UserRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, users: users, now: time.Now}
}

// List lista tareas con filtros; mine=true restringe a las creadas por o asignadas al usuario.
func (uc *TaskUseCase) List(ctx context.Context, userID string, q dto.TaskListQuery) ([]dto.TaskResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	filter := repository.TaskFilter{Status: q.Status, Priority: q.Priority, AssignedTo: q.AssignedTo}
	if q.Mine {
		filter.InvolvedUser = userID
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponses(list, uc.now()), nil
}

// GetByID obtiene una tarea expandida.
func (uc *TaskUseCase) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToTaskResponse(task, uc.now())
	return &out, nil
}

// Create crea una tarea; el creador es el usuario autenticado.
func (uc *TaskUseCase) Create(ctx context.Context, userID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	task := &entity.Task{
		ID:          uuid.NewString(),
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedBy:   userID,
		DueDate:     in.DueDate,
		Progress:    in.Progress,
		Tags:        sanitize.Strings(in.Tags),
		Comments:    []entity.Comment{},
		Attachments: dto.ToAttachments(in.Attachments, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.assign(ctx, task, in.AssignedTo); err != nil {
		return nil, err
	}
	task.ApplyDefaults()
	task.Normalize(now)
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("crear tarea: %w", err)
	}
	return uc.GetByID(ctx, task.ID)
}

// Update actualización parcial; vuelve a normalizar y validar antes de persistir.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	task, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if in.Title != nil {
		task.Title = sanitize.Text(*in.Title)
	}
	if in.Description != nil {
		task.Description = sanitize.Text(*in.Description)
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		if err := uc.assign(ctx, task, in.AssignedTo); err != nil {
			return nil, err
		}
	}
	in.DueDate.Apply(&task.DueDate)
	if in.Progress != nil {
		task.Progress = *in.Progress
	}
	if in.Tags != nil {
		task.Tags = sanitize.Strings(in.Tags)
	}
	if in.Attachments != nil {
		task.Attachments = dto.ToAttachments(*in.Attachments, now)
	}
	task.Normalize(now)
	if err := task.Validate(); err != nil {
		return nil, err
	}
	task.UpdatedAt = now
	if err := uc.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, task.ID)
}

// Delete elimina la tarea y sus comentarios.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return notFoundOnInvalidID(err, "Task")
	}
	if !ok {
		return domain.NotFound("Task")
	}
	return nil
}

// AddComment agrega un comentario del usuario autenticado.
func (uc *TaskUseCase) AddComment(ctx context.Context, id, userID string, in dto.AddCommentRequest) (*dto.TaskResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	text := sanitize.Text(in.Text)
	if text == "" {
		return nil, domain.NewValidationError("text", "Comment text is required")
	}
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	c := &entity.Comment{ID: uuid.NewString(), UserID: userID, Text: text, CreatedAt: uc.now()}
	if err := uc.repo.AddComment(ctx, id, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// assign "" desasigna; un id debe corresponder a un usuario existente.
func (uc *TaskUseCase) assign(ctx context.Context, task *entity.Task, assignedTo *string) error {
	if assignedTo == nil || *assignedTo == "" {
		task.AssignedTo = nil
		return nil
	}
	user, err := uc.users.GetByID(ctx, *assignedTo)
	if err != nil {
		return notFoundOnInvalidID(err, "User")
	}
	if user == nil {
		return domain.NewValidationError("assignedTo", "Assigned user not found")
	}
	id := user.ID
	task.AssignedTo = &id
	return nil
}

func (uc *TaskUseCase) load(ctx context.Context, id string) (*entity.Task, error) {
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOnInvalidID(err, "Task")
	}
	if task == nil {
		return nil, domain.NotFound("Task")
	}
	return task, nil
}
