package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// El mensaje que ve el cliente lo decide el normalizador HTTP.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidID          = errors.New("identificador inválido")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrTokenExpired       = errors.New("token expirado")
	ErrUserNotFound       = errors.New("usuario del token no existe")
	ErrAccountInactive    = errors.New("cuenta desactivada")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrIncorrectPassword  = errors.New("contraseña actual incorrecta")
	ErrInvalidResetToken  = errors.New("token de reset inválido o expirado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// NotFoundError recurso concreto inexistente. Error() es el mensaje público ("Task not found").
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound construye un NotFoundError.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// DuplicateError violación de unicidad sobre un campo.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "Duplicate field value entered"
	}
	return e.Field + " already exists"
}

// Is permite errors.Is(err, ErrDuplicate).
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// FieldError una violación de validación.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones de un payload.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, ", ")
}

// Add agrega una violación.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// OrNil devuelve nil si no hay violaciones.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewValidationError construye un ValidationError de un solo campo.
func NewValidationError(field, message string) error {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
