package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUser   = "user"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Authenticator valida un token de sesión y devuelve el usuario actual.
// Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// bearerToken extrae el token de "Authorization: Bearer <token>"; "" si falta o no es Bearer.
func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setIdentity(c *fiber.Ctx, user *entity.User) {
	c.Locals(LocalUser, user)
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, user.Role)
}

// AuthMiddleware exige un Bearer Token válido de un usuario existente y activo.
// Los errores (ErrUnauthorized, ErrInvalidToken, ErrTokenExpired, ErrUserNotFound,
// ErrAccountInactive) los formatea el ErrorHandler.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}
		user, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		setIdentity(c, user)
		return c.Next()
	}
}

// OptionalAuth adjunta la identidad si el token es válido; cualquier fallo sigue sin identidad.
func OptionalAuth(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if user, err := authn.Authenticate(c.UserContext(), token); err == nil {
				setIdentity(c, user)
			}
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetUser devuelve el usuario autenticado o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
