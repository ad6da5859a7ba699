package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			tag := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if tag != "" && tag != "-" {
				return tag
			}
		}
		return f.Name
	})
	return v
}

// bindBody decodifica el JSON en dest y lo valida. Si falla ya escribió la respuesta 400
// y devuelve ok=false.
func bindBody(c *fiber.Ctx, dest any) (bool, error) {
	if err := c.BodyParser(dest); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return check(c, dest)
}

// bindQuery decodifica los parámetros de consulta en dest y los valida.
func bindQuery(c *fiber.Ctx, dest any) (bool, error) {
	if err := c.QueryParser(dest); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	return check(c, dest)
}

func check(c *fiber.Ctx, dest any) (bool, error) {
	err := validate.Struct(dest)
	if err == nil {
		return true, nil
	}
	resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	if errs, ok := err.(validator.ValidationErrors); ok {
		resp.Details = make(map[string]string, len(errs))
		for _, fe := range errs {
			resp.Details[fe.Field()] = validationMessage(fe)
		}
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(resp)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	}
	return "no es válido"
}
