package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/auth"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
)

// AuthHandler maneja login y permisos del usuario autenticado.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "código de organización, email, password"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Permissions godoc
// @Summary      Permisos del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.PermissionsResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/permissions [get]
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(dto.OK(usecase.MyPermissions(GetTenant(c).Role)))
}
