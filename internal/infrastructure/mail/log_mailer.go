// Package mail implementa el ResetMailer sin proveedor externo: el enlace queda en el log.
package mail

import (
	"context"
	"net/url"
	"strings"

	"github.com/jhoicas/taskstore-api/internal/application/ports"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

var _ ports.ResetMailer = (*LogMailer)(nil)

// LogMailer registra el enlace de reset. Con revealLink=false (producción) solo deja constancia
// del envío, sin el token.
type LogMailer struct {
	frontendURL string
	revealLink  bool
	log         *logger.Logger
}

// NewLogMailer construye el mailer. frontendURL es la base del enlace (FRONTEND_URL).
func NewLogMailer(frontendURL string, revealLink bool, log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &LogMailer{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		revealLink:  revealLink,
		log:         log.WithComponent("mail"),
	}
}

// ResetLink arma {frontendURL}/reset-password?token=...
func (m *LogMailer) ResetLink(token string) string {
	return m.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

// SendPasswordReset implementa ports.ResetMailer.
func (m *LogMailer) SendPasswordReset(_ context.Context, msg ports.PasswordResetMessage) error {
	ev := m.log.Info().
		Str("user_id", msg.UserID).
		Time("expires_at", msg.ExpiresAt)
	if m.revealLink {
		ev = ev.Str("to", msg.Email).Str("link", m.ResetLink(msg.Token))
	}
	ev.Msg("enlace de restablecimiento emitido")
	return nil
}
