package memory

import (
	"context"
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.LastLogin = cloneTime(u.LastLogin)
	return &c
}

// Create persiste un usuario nuevo; email duplicado = DuplicateError{email}.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == entity.NormalizeEmail(user.Email) {
			return &domain.DuplicateError{Field: "email"}
		}
	}
	user.Email = entity.NormalizeEmail(user.Email)
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

// GetByEmail busca sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// List más recientes primero.
func (r *UserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sortNewestFirst(out, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID })
	return out, nil
}

// Update persiste perfil, rol, estado y preferencias; conserva el hash.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[user.ID]
	if !ok {
		return domain.NotFound("User")
	}
	email := entity.NormalizeEmail(user.Email)
	for id, u := range r.s.users {
		if id != user.ID && u.Email == email {
			return &domain.DuplicateError{Field: "email"}
		}
	}
	next := cloneUser(user)
	next.Email = email
	next.PasswordHash = cur.PasswordHash
	r.s.users[user.ID] = next
	return nil
}

// UpdatePassword reemplaza el hash.
func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.NotFound("User")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// UpdateLastLogin registra el último acceso.
func (r *UserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.NotFound("User")
	}
	u.LastLogin = &at
	return nil
}

// Delete no arrastra tareas ni productos (referencias débiles).
func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return false, nil
	}
	delete(r.s.users, id)
	return true, nil
}
