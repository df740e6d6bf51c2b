package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
)

// OrganizationHandler administración de organizaciones (solo super_admin).
type OrganizationHandler struct {
	uc *organization.UseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *organization.UseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de organización
// @Description  Crea la organización, sus tipos de material por defecto y su administrador en una transacción.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "Organización y administrador"
// @Success      201   {object}  dto.Envelope{data=dto.BootstrapResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "código ya registrado"
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Bootstrap(c.UserContext(), in, rbac.RoleAdmin)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID GET /api/organizations/:id
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// List GET /api/organizations
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// ListThin GET /api/organizations/thin
func (h *OrganizationHandler) ListThin(c *fiber.Ctx) error {
	out, err := h.uc.ListThin(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update PUT /api/organizations/:id
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete DELETE /api/organizations/:id; borra en cascada todos sus datos.
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("organización eliminada"))
}
