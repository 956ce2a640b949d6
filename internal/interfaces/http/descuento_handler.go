package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/gestion-hotelera/internal/application"
	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type DescuentoHandler struct {
	service *application.DescuentoService
}

// NewDescuentoHandler crea una nueva instancia del handler de descuentos
func NewDescuentoHandler(service *application.DescuentoService) *DescuentoHandler {
	return &DescuentoHandler{
		service: service,
	}
}

// DescuentoRequest representa la petición para crear o actualizar un descuento
type DescuentoRequest struct {
	Codigo               string   `json:"codigo"`
	Descripcion          string   `json:"descripcion"`
	Tipo                 string   `json:"tipo"` // PORCENTAJE o MONTO_FIJO
	Valor                float64  `json:"valor"`
	MontoMinimo          *float64 `json:"montoMinimo,omitempty"`
	MontoMaximoDescuento *float64 `json:"montoMaximoDescuento,omitempty"`
	FechaInicio          string   `json:"fechaInicio"` // Formato: YYYY-MM-DD
	FechaFin             string   `json:"fechaFin"`    // Formato: YYYY-MM-DD
	UsosMaximos          *int     `json:"usosMaximos,omitempty"`
	Activo               bool     `json:"activo"`
}

// CreateDescuento registra un código de descuento nuevo
func (h *DescuentoHandler) CreateDescuento(c *fiber.Ctx) error {
	descuento, err := h.parsearDescuento(c, 0)
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.CrearDescuento(descuento); err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(descuento)
}

// UpdateDescuento actualiza un descuento existente
func (h *DescuentoHandler) UpdateDescuento(c *fiber.Ctx) error {
	id, err := parsearID(c, "id")
	if err != nil {
		return responderError(c, err)
	}

	descuento, err := h.parsearDescuento(c, id)
	if err != nil {
		return responderError(c, err)
	}

	if err := h.service.ActualizarDescuento(descuento); err != nil {
		return responderError(c, err)
	}

	return c.JSON(descuento)
}

// GetDescuentoByCodigo busca un descuento por su código
func (h *DescuentoHandler) GetDescuentoByCodigo(c *fiber.Ctx) error {
	descuento, err := h.service.BuscarPorCodigo(c.Params("codigo"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(descuento)
}

// GetDescuentosVigentes lista los descuentos redimibles hoy
func (h *DescuentoHandler) GetDescuentosVigentes(c *fiber.Ctx) error {
	descuentos, err := h.service.ObtenerVigentes()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"descuentos": descuentos,
		"total":      len(descuentos),
	})
}

func (h *DescuentoHandler) parsearDescuento(c *fiber.Ctx, id int) (*domain.Descuento, error) {
	var req DescuentoRequest
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

	tipo, err := domain.ParseTipoDescuento(req.Tipo)
	if err != nil {
		return nil, err
	}

	return &domain.Descuento{
		ID:                   id,
		Codigo:               req.Codigo,
		Descripcion:          req.Descripcion,
		Tipo:                 tipo,
		Valor:                req.Valor,
		MontoMinimo:          req.MontoMinimo,
		MontoMaximoDescuento: req.MontoMaximoDescuento,
		FechaInicio:          inicio,
		FechaFin:             fin,
		UsosMaximos:          req.UsosMaximos,
		Activo:               req.Activo,
	}, nil
}
