package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/pkg/logger"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

const msgInternal = "Internal server error"

// sentinelResponses mensaje público y status por error de dominio.
var sentinelResponses = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "Access denied. No token provided."},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized, "Token expired."},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "Invalid token."},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "Invalid token. User not found."},
	{domain.ErrAccountInactive, fiber.StatusUnauthorized, "Account is deactivated."},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrForbidden, fiber.StatusForbidden, "Access denied. Insufficient permissions."},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "User already exists with this email"},
	{domain.ErrIncorrectPassword, fiber.StatusBadRequest, "Current password is incorrect"},
	{domain.ErrInvalidResetToken, fiber.StatusBadRequest, "Invalid or expired reset token"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "Invalid request body"},
	{domain.ErrInvalidID, fiber.StatusNotFound, "Resource not found"},
	{domain.ErrNotFound, fiber.StatusNotFound, "Resource not found"},
}

// NewErrorHandler normalizador único: todo error devuelto por middleware o handler
// termina aquí como envelope { success:false, message, errors? }.
// Fuera de producción los 500 incluyen el detalle en "stack".
func NewErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := normalize(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
			if !production {
				body.Stack = err.Error()
			}
		}
		return c.Status(status).JSON(body)
	}
}

func normalize(err error) (int, dto.Envelope) {
	var (
		verr  *domain.ValidationError
		nf    *domain.NotFoundError
		dup   *domain.DuplicateError
		fbErr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		env := dto.Fail(verr.Error())
		env.Errors = verr.Errors
		return fiber.StatusBadRequest, env
	case errors.As(err, &nf):
		return fiber.StatusNotFound, dto.Fail(nf.Error())
	case errors.As(err, &dup):
		return fiber.StatusBadRequest, dto.Fail(dup.Error())
	case errors.As(err, &fbErr):
		return fbErr.Code, dto.Fail(fbErr.Message)
	case errors.Is(err, password.ErrTooLong):
		msg := fmt.Sprintf("Password cannot exceed %d bytes", password.MaxBytes)
		env := dto.Fail(msg)
		env.Errors = []domain.FieldError{{Field: "password", Message: msg}}
		return fiber.StatusBadRequest, env
	}
	for _, s := range sentinelResponses {
		if errors.Is(err, s.err) {
			return s.status, dto.Fail(s.message)
		}
	}
	return fiber.StatusInternalServerError, dto.Fail(msgInternal)
}
