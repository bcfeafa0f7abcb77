package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/pkg/validation"
)

// respond responde con el sobre uniforme {success, message, data}.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

// fail responde con el sobre de error; data queda en null.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: false,
		Message: message,
		Error:   &dto.ErrorResponse{Code: code, Message: message},
	})
}

// errorStatus traduce los errores de dominio a estado HTTP y código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPrice):
		return fiber.StatusBadRequest, "INVALID_PRICE"
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateCode):
		return fiber.StatusConflict, "DUPLICATE_CODE"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "IN_USE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// failErr responde un error de caso de uso. Los 500 no exponen el detalle interno.
func failErr(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(localsErrKey, err)
		return fail(c, status, code, "error interno")
	}
	return fail(c, status, code, err.Error())
}

// parseBody decodifica el JSON y valida los tags `validate` del DTO.
// Si devuelve false ya respondió 400 y el handler debe retornar el error de escritura.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validation.Struct(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	return true, nil
}

// ErrorHandler reemplaza el manejador por defecto de fiber para que rutas inexistentes,
// métodos no permitidos y panics recuperados también respondan con el sobre.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fail(c, fe.Code, "NOT_FOUND", "ruta no encontrada")
		case fiber.StatusMethodNotAllowed:
			return fail(c, fe.Code, "METHOD_NOT_ALLOWED", "método no permitido")
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fail(c, fe.Code, "HTTP_ERROR", fe.Message)
		}
	}
	return failErr(c, err)
}
