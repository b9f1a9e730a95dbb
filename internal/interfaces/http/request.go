package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

// parseBody decodifica el JSON; cuerpo mal formado → ErrInvalidInput (400).
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// parseQuery decodifica los filtros de la query string.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
