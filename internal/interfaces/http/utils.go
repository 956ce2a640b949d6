package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// responderError traduce la taxonomía de errores del dominio a códigos HTTP:
// validación 400, no encontrado 404, conflicto de fechas 409, transición de
// estado ilegal 422. Cualquier otro error es un 500 genérico sin detalle.
func responderError(c *fiber.Ctx, err error) error {
	if ve := domain.IsValidationError(err); ve != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Msg,
		})
	}

	if ne := domain.IsNotFoundError(err); ne != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ne.Error(),
		})
	}

	if ce := domain.IsConflictError(err); ce != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     ce.Msg,
			"conflicto": ce.Conflicto,
		})
	}

	if se := domain.IsStateError(err); se != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": se.Msg,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Error interno del servidor",
	})
}

// parsearFecha interpreta una fecha en formato YYYY-MM-DD
func parsearFecha(valor string) (time.Time, error) {
	fecha, err := time.Parse("2006-01-02", valor)
	if err != nil {
		return time.Time{}, domain.NewValidationError("formato de fecha inválido '%s'. Use YYYY-MM-DD", valor)
	}
	return fecha, nil
}

// parsearID interpreta un parámetro de ruta como ID numérico positivo
func parsearID(c *fiber.Ctx, nombre string) (int, error) {
	id, err := strconv.Atoi(c.Params(nombre))
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("el parámetro '%s' debe ser un ID numérico válido", nombre)
	}
	return id, nil
}
