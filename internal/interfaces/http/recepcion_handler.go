package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/application"
)

type RecepcionHandler struct {
	service *application.RecepcionService
}

// NewRecepcionHandler crea una nueva instancia del handler de recepción
func NewRecepcionHandler(service *application.RecepcionService) *RecepcionHandler {
	return &RecepcionHandler{
		service: service,
	}
}

// CheckIn registra la llegada del huésped de una reserva pendiente
func (h *RecepcionHandler) CheckIn(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	reserva, err := h.service.RealizarCheckIn(id)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Check-in realizado exitosamente",
		"reserva": reserva,
	})
}

// CheckOut registra la salida del huésped de una reserva activa
func (h *RecepcionHandler) CheckOut(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	reserva, err := h.service.RealizarCheckOut(id)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Check-out realizado exitosamente",
		"reserva": reserva,
	})
}

// Llegadas lista las reservas pendientes que inician hoy
func (h *RecepcionHandler) Llegadas(c *fiber.Ctx) error {
	reservas, err := h.service.LlegadasHoy()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"llegadas": reservas,
		"total":    len(reservas),
	})
}

// Salidas lista las reservas activas que terminan hoy
func (h *RecepcionHandler) Salidas(c *fiber.Ctx) error {
	reservas, err := h.service.SalidasHoy()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"salidas": reservas,
		"total":   len(reservas),
	})
}

// Ocupacion retorna la cantidad de habitaciones ocupadas hoy
func (h *RecepcionHandler) Ocupacion(c *fiber.Ctx) error {
	ocupadas, err := h.service.OcupacionActual()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"ocupadas": ocupadas,
	})
}
