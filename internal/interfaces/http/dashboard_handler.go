package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// DashboardHandler indicadores del tablero.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats devuelve conteos de obras, proveedores y materiales y el total de gastos
// de la organización del token.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}
