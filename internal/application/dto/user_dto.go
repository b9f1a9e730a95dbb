package dto

import (
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// RegisterRequest entrada de POST /api/auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,bcryptmax"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin manager"`
}

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest entrada de POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest entrada de POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

// AuthResponse usuario + token de sesión.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MeResponse salida de GET /api/auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// CreateUserRequest alta administrativa de usuarios.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,bcryptmax"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin manager"`
	IsActive  *bool  `json:"isActive"`
}

// UpdateUserRequest actualización parcial administrativa (sin contraseña).
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin manager"`
	IsActive  *bool   `json:"isActive"`
}

// NotificationsDTO canales de notificación.
type NotificationsDTO struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// PreferencesDTO preferencias de interfaz.
type PreferencesDTO struct {
	Theme         string           `json:"theme"`
	Notifications NotificationsDTO `json:"notifications"`
	Language      string           `json:"language"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	FullName    string         `json:"fullName"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	IsActive    bool           `json:"isActive"`
	Preferences PreferencesDTO `json:"preferences"`
	LastLogin   *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// UserRefResponse referencia expandida.
type UserRefResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ToUserResponse proyecta la entidad; nunca expone el hash.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Preferences: ToPreferencesDTO(u.Preferences),
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses proyecta una lista.
func ToUserResponses(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToUserRef proyecta una referencia; nil si no hay.
func ToUserRef(r *entity.UserRef) *UserRefResponse {
	if r == nil {
		return nil
	}
	return &UserRefResponse{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

// ToPreferencesDTO proyecta las preferencias.
func ToPreferencesDTO(p entity.Preferences) PreferencesDTO {
	return PreferencesDTO{
		Theme: p.Theme,
		Notifications: NotificationsDTO{
			Email: p.Notifications.Email,
			Push:  p.Notifications.Push,
			SMS:   p.Notifications.SMS,
		},
		Language: p.Language,
	}
}
