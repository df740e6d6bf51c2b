package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

// HTTPObserver recibe la duración de cada petición (métricas). Puede ser nil.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// requestIDKey clave de Locals con el id de la petición.
const requestIDKey = "request_id"

// RequestID acepta el X-Request-ID entrante o genera uno; va antes de RequestLogger.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	})
}

// RequestLogger deja un logger por petición en el UserContext (logger.Ctx) y
// registra método, ruta, status y latencia al terminar.
func RequestLogger(log *logger.Logger, obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestIDKey).(string)
		c.SetUserContext(log.Request(reqID).WithContext(c.UserContext()))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		if obs != nil {
			obs.ObserveHTTP(c.Method(), c.Route().Path, status, elapsed)
		}
		reqLog := logger.Ctx(c.UserContext())
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}
