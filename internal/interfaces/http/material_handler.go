package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// MaterialHandler maneja compras de material y sus comprobantes.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra de material
// @Description  receipt es opcional: data URL base64 de una imagen (png, jpeg, webp, gif; máx. 5 MB).
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos de la compra"
// @Success      201   {object}  dto.Envelope{data=dto.MaterialResponse}
// @Failure      400   {object}  dto.Envelope  "referencia inexistente en la organización o comprobante inválido"
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener material por ID
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.Envelope{data=dto.MaterialResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Proveedor, tipo u obra"
// @Param        project_id  query  string  false  "Obra"
// @Param        from        query  string  false  "Fecha de factura desde"
// @Param        to          query  string  false  "Fecha de factura hasta"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.MaterialResponse]}
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var f dto.MaterialFilterRequest
	if err := bindQuery(c, &f); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), f, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// ListThin GET /api/materials/thin
func (h *MaterialHandler) ListThin(c *fiber.Ctx) error {
	out, err := h.uc.ListThin(c.UserContext(), GetScope(c), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update PUT /api/materials/:id. receipt "" quita el comprobante actual.
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("material eliminado"))
}
