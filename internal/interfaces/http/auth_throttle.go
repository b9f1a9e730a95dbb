package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

// AuthThrottle limita login/registro/reset por IP con un token bucket.
// Responde 429 con Retry-After al agotarse.
func AuthThrottle(kl *ratelimit.KeyedLimiter, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		if kl == nil || kl.Allow(c.IP()) {
			return c.Next()
		}
		log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("límite de intentos de auth")
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(kl.RetryAfter()))
		return c.Status(fiber.StatusTooManyRequests).
			JSON(dto.Fail("Too many authentication attempts, please try again later."))
	}
}
