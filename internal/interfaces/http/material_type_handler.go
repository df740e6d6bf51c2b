package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// MaterialTypeHandler maneja los tipos de material de la organización.
type MaterialTypeHandler struct {
	uc *usecase.MaterialTypeUseCase
}

// NewMaterialTypeHandler construye el handler.
func NewMaterialTypeHandler(uc *usecase.MaterialTypeUseCase) *MaterialTypeHandler {
	return &MaterialTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de material
// @Tags         material-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialTypeRequest  true  "Nombre"
// @Success      201   {object}  dto.Envelope{data=dto.MaterialTypeResponse}
// @Failure      409   {object}  dto.Envelope  "slug repetido en la organización"
// @Router       /api/material-types [post]
func (h *MaterialTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.MaterialTypeRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

func (h *MaterialTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

func (h *MaterialTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetScope(c), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

func (h *MaterialTypeHandler) ListThin(c *fiber.Ctx) error {
	out, err := h.uc.ListThin(c.UserContext(), GetScope(c), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

func (h *MaterialTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.MaterialTypeRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete 409 mientras algún material use el tipo.
func (h *MaterialTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("tipo de material eliminado"))
}
