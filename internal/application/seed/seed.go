// Package seed crea los datos mínimos de demostración.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

// DemoAdmin datos de la cuenta administradora de demostración.
type DemoAdmin struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsureDemoAdmin crea la cuenta admin si no existe un usuario con ese email.
// Devuelve true cuando la crea. Es idempotente.
func EnsureDemoAdmin(ctx context.Context, users repository.UserRepository, in DemoAdmin) (bool, error) {
	email := entity.NormalizeEmail(in.Email)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("seed: buscar admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return false, fmt.Errorf("seed: hash: %w", err)
	}
	first, last := in.FirstName, in.LastName
	if first == "" {
		first = "Demo"
	}
	if last == "" {
		last = "Admin"
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		Preferences:  entity.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if err := users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("seed: crear admin: %w", err)
	}
	return true, nil
}
