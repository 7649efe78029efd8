package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
)

// respondError traduce los errores de dominio al status HTTP y al sobre estándar.
// Los errores no reconocidos responden 500 sin filtrar detalles internos.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(userMessage(err, "datos inválidos")))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("credenciales inválidas"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("acceso denegado"))
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("usuario no encontrado"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("recurso no encontrado"))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("el correo ya está registrado"))
	case errors.Is(err, domain.ErrPeriodHasData):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("el período ya tiene datos cargados; confirme la sobrescritura"))
	case errors.Is(err, domain.ErrUnsupportedFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("tipo de archivo no soportado; use CSV o XLSX"))
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("la operación entra en conflicto con el estado actual"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("error interno del servidor"))
}

// userMessage devuelve el mensaje del error si es apto para el usuario final
// (errores de validación envueltos con ErrInvalidInput).
func userMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	msg := err.Error()
	const prefix = "entrada inválida: "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}
