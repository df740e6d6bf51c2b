package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// ExpenseHandler maneja los gastos de la organización.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Description  project_id es obligatorio cuando scope es project.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.Envelope{data=dto.ExpenseResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Descripción, proveedor u obra"
// @Param        scope       query  string  false  "project | company"
// @Param        project_id  query  string  false  "Obra"
// @Param        from        query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to          query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.ExpenseResponse]}
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var f dto.ExpenseFilterRequest
	if err := bindQuery(c, &f); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), f, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("gasto eliminado"))
}
