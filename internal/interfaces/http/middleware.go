package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/pkg/logger"
	"github.com/jhoicas/almacen-api/pkg/metrics"
)

// RequestLogger registra una línea por petición y observa su latencia. m puede ser nil.
func RequestLogger(log *logger.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		if m != nil {
			m.Observe(c.Method(), route, strconv.Itoa(status), elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}

// idParam lee un ID de ruta. Un valor que no es UUID no puede existir: responde 404.
func idParam(c *fiber.Ctx, entity string) (string, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: entity + " " + id + " no encontrado"})
	}
	return id, true, nil
}
