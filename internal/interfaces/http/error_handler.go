package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

var statusByKind = map[error]int{
	domain.ErrUnauthenticated: fiber.StatusUnauthorized,
	domain.ErrForbidden:       fiber.StatusForbidden,
	domain.ErrNotFound:        fiber.StatusNotFound,
	domain.ErrConflict:        fiber.StatusConflict,
	domain.ErrValidation:      fiber.StatusBadRequest,
	domain.ErrInternal:        fiber.StatusInternalServerError,
}

// ErrorHandler traduce errores de dominio al sobre estándar. Los errores internos
// se registran con su causa y se responden con un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.Fail(fe.Message))
		}
		kind := domain.KindOf(err)
		status := statusByKind[kind]
		if kind == domain.ErrInternal {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
			return c.Status(status).JSON(dto.Fail("error interno"))
		}
		return c.Status(status).JSON(dto.Fail(domain.Message(err), domain.Fields(err)...))
	}
}
