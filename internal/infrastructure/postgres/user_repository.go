package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active,
	theme, notify_email, notify_push, notify_sms, language, last_login, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.Preferences.Theme, &u.Preferences.Notifications.Email, &u.Preferences.Notifications.Push,
		&u.Preferences.Notifications.SMS, &u.Preferences.Language, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. Email duplicado → DuplicateError{email}.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	user.Email = entity.NormalizeEmail(user.Email)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	p := user.Preferences
	_, err := r.q.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role, user.IsActive,
		p.Theme, p.Notifications.Email, p.Notifications.Push, p.Notifications.SMS, p.Language,
		user.LastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", translateError(err))
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", translateError(err))
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (se guarda en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, entity.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if filter.ActiveOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza perfil, rol, estado y preferencias. La contraseña va por UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	user.Email = entity.NormalizeEmail(user.Email)
	query := `
		UPDATE users SET first_name = $2, last_name = $3, email = $4, role = $5, is_active = $6,
			theme = $7, notify_email = $8, notify_push = $9, notify_sms = $10, language = $11,
			updated_at = $12
		WHERE id = $1`
	p := user.Preferences
	cmd, err := r.q.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role, user.IsActive,
		p.Theme, p.Notifications.Email, p.Notifications.Push, p.Notifications.SMS, p.Language,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", translateError(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("User")
	}
	return nil
}

// UpdatePassword reemplaza el hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", translateError(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("User")
	}
	return nil
}

// UpdateLastLogin registra el último acceso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", translateError(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("User")
	}
	return nil
}

// Delete elimina un usuario por ID. Tareas y productos conservan la referencia.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", translateError(err))
	}
	return cmd.RowsAffected() > 0, nil
}
