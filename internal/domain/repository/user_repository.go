package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	ActiveOnly bool
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los lookups que no encuentran fila devuelven (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail compara sin distinguir mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	// Update persiste perfil, rol, estado y preferencias (no la contraseña).
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
