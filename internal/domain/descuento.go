package domain

import (
	"strings"
	"time"
)

// TipoDescuento representa la modalidad de un descuento.
type TipoDescuento string

const (
	DescuentoPorcentaje TipoDescuento = "PORCENTAJE"
	DescuentoMontoFijo  TipoDescuento = "MONTO_FIJO"
)

// ParseTipoDescuento convierte un texto al tipo correspondiente.
func ParseTipoDescuento(texto string) (TipoDescuento, error) {
	switch normalizar(texto) {
	case string(DescuentoPorcentaje):
		return DescuentoPorcentaje, nil
	case string(DescuentoMontoFijo):
		return DescuentoMontoFijo, nil
	default:
		return "", NewValidationError("el tipo de descuento debe ser PORCENTAJE o MONTO_FIJO")
	}
}

// Descuento representa un código de descuento aplicable a reservas.
type Descuento struct {
	ID                   int           `json:"id"`
	Codigo               string        `json:"codigo"`
	Descripcion          string        `json:"descripcion"`
	Tipo                 TipoDescuento `json:"tipo"`
	Valor                float64       `json:"valor"`
	MontoMinimo          *float64      `json:"montoMinimo,omitempty"`
	MontoMaximoDescuento *float64      `json:"montoMaximoDescuento,omitempty"`
	FechaInicio          time.Time     `json:"fechaInicio"`
	FechaFin             time.Time     `json:"fechaFin"`
	UsosMaximos          *int          `json:"usosMaximos,omitempty"`
	UsosActuales         int           `json:"usosActuales"`
	Activo               bool          `json:"activo"`
	FechaCreacion        time.Time     `json:"fechaCreacion"`
}

// NormalizarCodigo lleva el código a su forma canónica: mayúsculas sin espacios.
func NormalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

// EsValido indica si el descuento puede redimirse en la fecha dada:
// activo, dentro de su vigencia y con usos disponibles.
func (d *Descuento) EsValido(hoy time.Time) bool {
	if !d.Activo {
		return false
	}
	if hoy.Before(d.FechaInicio) || hoy.After(d.FechaFin) {
		return false
	}
	if d.UsosMaximos != nil && d.UsosActuales >= *d.UsosMaximos {
		return false
	}
	return true
}

// CalcularDescuento retorna el monto a descontar sobre la base dada.
// Retorna 0 si el descuento no es válido, la base no es positiva o no
// alcanza el monto mínimo.
func (d *Descuento) CalcularDescuento(montoBase float64, hoy time.Time) float64 {
	if !d.EsValido(hoy) || montoBase <= 0 {
		return 0
	}
	if d.MontoMinimo != nil && montoBase < *d.MontoMinimo {
		return 0
	}

	switch d.Tipo {
	case DescuentoPorcentaje:
		monto := montoBase * (d.Valor / 100.0)
		if d.MontoMaximoDescuento != nil && monto > *d.MontoMaximoDescuento {
			monto = *d.MontoMaximoDescuento
		}
		return monto
	case DescuentoMontoFijo:
		if d.Valor > montoBase {
			return montoBase
		}
		return d.Valor
	}
	return 0
}

// DescuentoRepository define las operaciones con descuentos
type DescuentoRepository interface {
	// GetDescuentoByID obtiene un descuento por su ID
	GetDescuentoByID(id int) (*Descuento, error)
	// GetDescuentoByCodigo busca un descuento por su código normalizado
	GetDescuentoByCodigo(codigo string) (*Descuento, error)
	// CreateDescuento crea un nuevo descuento
	CreateDescuento(d *Descuento) error
	// UpdateDescuento actualiza un descuento existente
	UpdateDescuento(d *Descuento) error
	// GetDescuentosVigentes retorna los descuentos activos y dentro de vigencia
	GetDescuentosVigentes(hoy time.Time) ([]Descuento, error)
}
