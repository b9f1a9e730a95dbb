package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

// RequireRole permite continuar solo si el rol del usuario está en roles.
// Debe usarse DESPUÉS de AuthMiddleware: sin identidad → 401, rol no permitido → 403.
func RequireRole(log *logger.Logger, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if GetUserID(c) == "" || role == "" {
			return domain.ErrUnauthorized
		}
		if _, ok := allowed[role]; !ok {
			log.Warn().
				Str("user_id", GetUserID(c)).
				Str("role", role).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("acceso denegado por rol")
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// AdminOnly atajo para rutas de administración.
func AdminOnly(log *logger.Logger) fiber.Handler {
	return RequireRole(log, entity.RoleAdmin)
}

// AdminOrManager atajo para escrituras de catálogo y dashboard.
func AdminOrManager(log *logger.Logger) fiber.Handler {
	return RequireRole(log, entity.RoleAdmin, entity.RoleManager)
}
