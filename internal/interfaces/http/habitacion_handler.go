package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/application"
	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type HabitacionHandler struct {
	service *application.HabitacionService
}

// NewHabitacionHandler crea una nueva instancia del handler de habitaciones
func NewHabitacionHandler(service *application.HabitacionService) *HabitacionHandler {
	return &HabitacionHandler{
		service: service,
	}
}

// HabitacionRequest representa la petición para crear o actualizar una habitación
type HabitacionRequest struct {
	Numero         string  `json:"numero"`
	Tipo           string  `json:"tipo"`
	PrecioPorNoche float64 `json:"precioPorNoche"`
	Estado         string  `json:"estado,omitempty"`
}

// UpdateEstadoHabitacionRequest representa el cambio explícito de estado
type UpdateEstadoHabitacionRequest struct {
	Estado string `json:"estado"`
}

// GetAllHabitaciones retorna todas las habitaciones
func (h *HabitacionHandler) GetAllHabitaciones(c *fiber.Ctx) error {
	habitaciones, err := h.service.GetAllHabitaciones()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"habitaciones": habitaciones,
		"total":        len(habitaciones),
	})
}

// GetHabitacionByID obtiene una habitación por su ID
func (h *HabitacionHandler) GetHabitacionByID(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	habitacion, err := h.service.BuscarHabitacionPorID(id)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(habitacion)
}

// CreateHabitacion registra una habitación nueva
func (h *HabitacionHandler) CreateHabitacion(c *fiber.Ctx) error {
	habitacion, err := h.parsearHabitacion(c, 0)
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.CrearHabitacion(habitacion); err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(habitacion)
}

// UpdateHabitacion actualiza los datos de una habitación
func (h *HabitacionHandler) UpdateHabitacion(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	habitacion, err := h.parsearHabitacion(c, id)
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.ActualizarHabitacion(habitacion); err != nil {
		return responderError(c, err)
	}

	return c.JSON(habitacion)
}

// UpdateEstado cambia el estado de la habitación de forma explícita
// (incluye poner o quitar mantenimiento)
func (h *HabitacionHandler) UpdateEstado(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	var req UpdateEstadoHabitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	estado, err := domain.ParseEstadoHabitacion(req.Estado)
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.ActualizarEstadoHabitacion(id, estado); err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Estado de habitación actualizado exitosamente",
	})
}

func (h *HabitacionHandler) parsearHabitacion(c *fiber.Ctx, id int) (*domain.Habitacion, error) {
	var req HabitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewValidationError("formato de solicitud inválido")
	}

	estado, err := domain.ParseEstadoHabitacion(req.Estado)
	if err != nil {
		return nil, err
	}

	return &domain.Habitacion{
		ID:             id,
		Numero:         req.Numero,
		Tipo:           req.Tipo,
		PrecioPorNoche: req.PrecioPorNoche,
		Estado:         estado,
	}, nil
}
