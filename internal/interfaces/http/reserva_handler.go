package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/application"
	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type ReservaHandler struct {
	service *application.ReservaService
}

// NewReservaHandler crea una nueva instancia del handler de reservas
func NewReservaHandler(service *application.ReservaService) *ReservaHandler {
	return &ReservaHandler{
		service: service,
	}
}

// ReservaRequest representa la petición para crear o actualizar una reserva
type ReservaRequest struct {
	ClienteID    int    `json:"clienteId"`
	HabitacionID int    `json:"habitacionId"`
	FechaInicio  string `json:"fechaInicio"` // Formato: YYYY-MM-DD
	FechaFin     string `json:"fechaFin"`    // Formato: YYYY-MM-DD
	Estado       string `json:"estado,omitempty"`
}

// CancelarReservaRequest representa la petición de cancelación
type CancelarReservaRequest struct {
	Rol string `json:"rol"`
}

// AplicarDescuentoRequest representa la petición para aplicar un código
type AplicarDescuentoRequest struct {
	Codigo string `json:"codigo"`
}

// AsignarServiciosRequest representa la petición para asignar servicios
type AsignarServiciosRequest struct {
	Servicios []int    `json:"servicios"`
	Opciones  []string `json:"opciones,omitempty"`
}

// VerificarDisponibilidadRequest representa la petición para verificar disponibilidad
type VerificarDisponibilidadRequest struct {
	HabitacionID int    `json:"habitacionId"`
	FechaInicio  string `json:"fechaInicio"` // Formato: YYYY-MM-DD
	FechaFin     string `json:"fechaFin"`    // Formato: YYYY-MM-DD
	ExcluirID    int    `json:"excluirId,omitempty"`
}

// CreateReserva crea una nueva reserva
func (h *ReservaHandler) CreateReserva(c *fiber.Ctx) error {
	reserva, err := h.parsearReserva(c, 0)
	if err != nil {
		return responderError(c, err)
	}

	creada, err := h.service.CrearOActualizarReserva(reserva)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(creada)
}

// UpdateReserva actualiza las fechas o habitación de una reserva existente
func (h *ReservaHandler) UpdateReserva(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	reserva, err := h.parsearReserva(c, id)
	if err != nil {
		return responderError(c, err)
	}

	actualizada, err := h.service.CrearOActualizarReserva(reserva)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(actualizada)
}

// GetReservaByID obtiene una reserva por su ID
func (h *ReservaHandler) GetReservaByID(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	reserva, err := h.service.GetReservaByID(id)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(reserva)
}

// GetReservasCliente obtiene todas las reservas de un cliente
func (h *ReservaHandler) GetReservasCliente(c *fiber.Ctx) error {
	clienteID, err := parsearID(c, "clienteId")
	if err != nil {
		return responderError(c, err)
	}

	reservas, err := h.service.GetReservasCliente(clienteID)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"reservas": reservas,
		"total":    len(reservas),
	})
}

// CancelarReserva cancela una reserva. El rol del solicitante viaja en el
// cuerpo; un rol de cliente es rechazado por el servicio.
func (h *ReservaHandler) CancelarReserva(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	var req CancelarReservaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	if err := h.service.CancelarReserva(id, req.Rol); err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reserva cancelada exitosamente",
	})
}

// FinalizarReserva marca una reserva como finalizada
func (h *ReservaHandler) FinalizarReserva(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.FinalizarReserva(id); err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reserva finalizada exitosamente",
	})
}

// AplicarDescuento aplica un código de descuento a la reserva
func (h *ReservaHandler) AplicarDescuento(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	var req AplicarDescuentoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}
	if req.Codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El código de descuento es requerido",
		})
	}

	reserva, err := h.service.AplicarDescuento(id, req.Codigo)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(reserva)
}

// AsignarServicios reemplaza los servicios adicionales de la reserva
func (h *ReservaHandler) AsignarServicios(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	var req AsignarServiciosRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	reserva, err := h.service.AsignarServicios(id, req.Servicios, req.Opciones)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(reserva)
}

// VerificarDisponibilidad consulta si una habitación está libre en un rango
// de fechas, sin crear la reserva
func (h *ReservaHandler) VerificarDisponibilidad(c *fiber.Ctx) error {
	var req VerificarDisponibilidadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	inicio, err := parsearFecha(req.FechaInicio)
	if err != nil {
		return responderError(c, err)
	}
	fin, err := parsearFecha(req.FechaFin)
	if err != nil {
		return responderError(c, err)
	}

	disponible, err := h.service.EstaDisponible(req.HabitacionID, inicio, fin, req.ExcluirID)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"habitacionId": req.HabitacionID,
		"fechaInicio":  req.FechaInicio,
		"fechaFin":     req.FechaFin,
		"disponible":   disponible,
	})
}

func (h *ReservaHandler) parsearReserva(c *fiber.Ctx, id int) (*domain.Reserva, error) {
	var req ReservaRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewValidationError("formato de solicitud inválido")
	}

	inicio, err := parsearFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parsearFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}

	reserva := &domain.Reserva{
		ID:           id,
		ClienteID:    req.ClienteID,
		HabitacionID: req.HabitacionID,
		FechaInicio:  inicio,
		FechaFin:     fin,
	}

	if req.Estado != "" {
		estado, err := domain.ParseEstadoReserva(req.Estado)
		if err != nil {
			return nil, err
		}
		reserva.Estado = estado
	}

	return reserva, nil
}
