package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/application"
	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type PagoHandler struct {
	service *application.PagoService
}

// NewPagoHandler crea una nueva instancia del handler de pagos
func NewPagoHandler(service *application.PagoService) *PagoHandler {
	return &PagoHandler{
		service: service,
	}
}

// ProcesarPagoRequest representa la petición para registrar el pago
type ProcesarPagoRequest struct {
	Metodo string `json:"metodo,omitempty"` // TARJETA, DEPOSITO, EFECTIVO, BILLETERA_MOVIL
}

// ProcesarPago registra el pago de una reserva. Si ya existe uno, lo retorna
// sin crear otro.
func (h *PagoHandler) ProcesarPago(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	var req ProcesarPagoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de solicitud inválido",
		})
	}

	var metodo domain.MetodoPago
	if req.Metodo != "" {
		metodo, err = domain.ParseMetodoPago(req.Metodo)
		if err != nil {
			return responderError(c, err)
		}
	}

	pago, err := h.service.ProcesarPago(id, metodo)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pago)
}

// GetPagoByReserva obtiene el pago registrado de una reserva
func (h *PagoHandler) GetPagoByReserva(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	pago, err := h.service.GetPagoByReservaID(id)
	if err != nil {
		return responderError(c, err)
	}
	if pago == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "la reserva no tiene pago registrado",
		})
	}

	return c.JSON(pago)
}
