package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// ProjectHandler maneja las peticiones HTTP para obras (protegido).
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear obra
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos de la obra"
// @Success      201   {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
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
// @Summary      Obtener obra por ID
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la obra"
// @Success      200  {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar obras
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Nombre, cliente u obra"
// @Param        status      query  string  false  "Estado"
// @Param        start_from  query  string  false  "Inicio desde (AAAA-MM-DD)"
// @Param        start_to    query  string  false  "Inicio hasta (AAAA-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope{data=dto.ListResponse[dto.ProjectResponse]}
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var f dto.ProjectFilterRequest
	if err := bindQuery(c, &f); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), f, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// ListThin obras para selectores (id, nombre).
// GET /api/projects/thin
func (h *ProjectHandler) ListThin(c *fiber.Ctx) error {
	out, err := h.uc.ListThin(c.UserContext(), GetScope(c), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar obra
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la obra"
// @Param        body  body  dto.UpdateProjectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar obra
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la obra"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope  "tiene materiales o gastos"
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("obra eliminada"))
}
