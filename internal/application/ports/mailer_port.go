// Package ports define los puertos de salida de la capa de aplicación.
package ports

import (
	"context"
	"time"
)

// PasswordResetMessage datos para entregar un enlace de restablecimiento.
type PasswordResetMessage struct {
	UserID    string
	Email     string
	FirstName string
	Token     string
	ExpiresAt time.Time
}

// ResetMailer entrega el token de reset por un canal fuera de banda.
// El token nunca viaja en la respuesta HTTP.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error
}
