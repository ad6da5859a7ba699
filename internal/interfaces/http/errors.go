package http

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

const retryMessage = "No se pudo completar la operación. Intente nuevamente."

// errorStatus traduce un error de dominio a código HTTP y código de error.
// ok=false indica un error inesperado (infraestructura).
func errorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", true
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", true
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", true
	case errors.Is(err, domain.ErrDuplicateMovement):
		return fiber.StatusConflict, "DUPLICATE_MOVEMENT", true
	case errors.Is(err, domain.ErrMovementConflict):
		return fiber.StatusConflict, "MOVEMENT_CONFLICT", true
	case errors.Is(err, domain.ErrEmptyPackage):
		return fiber.StatusUnprocessableEntity, "EMPTY_PACKAGE", true
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", true
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", true
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", true
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", true
	}
	return fiber.StatusInternalServerError, "INTERNAL", false
}

// fail responde un error con dto.ErrorResponse. Los errores inesperados se registran
// y el cliente recibe el mensaje genérico.
func fail(c *fiber.Ctx, op string, err error) error {
	status, code, ok := errorStatus(err)
	if !ok {
		logFailure(c, op, err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: retryMessage})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message(err)})
}

// stockResult responde las operaciones del motor de stock con el sobre {success, message}.
// NotFound conserva el cuerpo dto.ErrorResponse con 404.
func stockResult(c *fiber.Ctx, op string, status int, okMessage string, data any, err error) error {
	if err == nil {
		return c.Status(status).JSON(dto.ResultResponse{Success: true, Message: okMessage, Data: data})
	}
	code, _, ok := errorStatus(err)
	switch {
	case !ok:
		logFailure(c, op, err)
		return c.Status(code).JSON(dto.ResultResponse{Success: false, Message: retryMessage})
	case code == fiber.StatusNotFound:
		return c.Status(code).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message(err)})
	case code == fiber.StatusBadRequest:
		code = fiber.StatusUnprocessableEntity
	}
	return c.Status(code).JSON(dto.ResultResponse{Success: false, Message: message(err)})
}

func logFailure(c *fiber.Ctx, op string, err error) {
	log.Error().
		Str("operation", op).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Err(err).
		Msg("fallo de persistencia")
}

// message devuelve el texto del error con la primera letra en mayúscula.
func message(err error) string {
	s := err.Error()
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
