package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/taskstore-api/internal/application/analytics"
	"github.com/jhoicas/taskstore-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de tareas, catálogo y usuarios
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardSummaryDTO}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(summary))
}
