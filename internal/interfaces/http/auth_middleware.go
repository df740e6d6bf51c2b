package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

// Locals keys del contexto de tenant en Fiber.
const (
	localTenant     = "tenant"
	localResolveErr = "tenant_error"
	localScope      = "scope"
)

// AuthMiddleware resuelve el Bearer Token en un tenant.Context y lo deja en c.Locals.
// No rechaza por sí mismo: el Gate (RequirePermission / Authenticated) decide.
func AuthMiddleware(resolver *tenant.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := resolver.ResolveHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			c.Locals(localResolveErr, err)
			return c.Next()
		}
		c.Locals(localTenant, tc)
		c.SetUserContext(logger.WithTenant(c.UserContext(), tc.OrganizationID, tc.UserID))
		return c.Next()
	}
}

// RequirePermission aplica el Gate: exige required y todos los permisos en also.
// Si autoriza, deja el tenant.Scope en c.Locals para el handler.
func RequirePermission(gate *tenant.Gate, required rbac.Permission, also ...rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := gate.Authorize(GetTenant(c), resolveError(c), required, also...)
		if err != nil {
			return err
		}
		c.Locals(localScope, scope)
		return c.Next()
	}
}

// Authenticated exige un token válido sin permiso concreto (p. ej. /api/permissions).
func Authenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := resolveError(c); err != nil {
			return err
		}
		if GetTenant(c).OrganizationID == "" {
			return domain.Unauthenticated("contexto de tenant ausente", nil)
		}
		return c.Next()
	}
}

// GetTenant devuelve el tenant.Context resuelto (vacío si el token no era válido).
func GetTenant(c *fiber.Ctx) tenant.Context {
	tc, _ := c.Locals(localTenant).(tenant.Context)
	return tc
}

// GetScope devuelve el Scope emitido por el Gate; cero si la ruta no pasó por RequirePermission.
func GetScope(c *fiber.Ctx) tenant.Scope {
	s, _ := c.Locals(localScope).(tenant.Scope)
	return s
}

func resolveError(c *fiber.Ctx) error {
	err, _ := c.Locals(localResolveErr).(error)
	return err
}
