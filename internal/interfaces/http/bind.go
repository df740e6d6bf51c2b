package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
)

// bindBody parsea el cuerpo JSON y valida los tags del DTO.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("cuerpo inválido")
	}
	return dto.Validate(out)
}

// bindQuery parsea el query string y valida los tags del DTO.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validation("parámetros de consulta inválidos")
	}
	return dto.Validate(out)
}

// pageFromQuery limit/offset del query string; los valores por defecto los aplica el use case.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
}
