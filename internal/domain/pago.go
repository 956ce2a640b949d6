package domain

import "time"

type MetodoPago string
type EstadoPago string

const (
	PagoTarjeta        MetodoPago = "TARJETA"
	PagoDeposito       MetodoPago = "DEPOSITO"
	PagoEfectivo       MetodoPago = "EFECTIVO"
	PagoBilleteraMovil MetodoPago = "BILLETERA_MOVIL"
)

// ParseMetodoPago convierte un texto al método de pago correspondiente.
func ParseMetodoPago(texto string) (MetodoPago, error) {
	switch normalizar(texto) {
	case string(PagoTarjeta):
		return PagoTarjeta, nil
	case string(PagoDeposito):
		return PagoDeposito, nil
	case string(PagoEfectivo):
		return PagoEfectivo, nil
	case string(PagoBilleteraMovil):
		return PagoBilleteraMovil, nil
	default:
		return "", NewValidationError("método de pago no válido: %s", texto)
	}
}

const (
	PagoCompletado EstadoPago = "COMPLETADO"
	PagoPendiente  EstadoPago = "PENDIENTE"
	PagoRechazado  EstadoPago = "RECHAZADO"
)

// Pago representa el pago de una reserva. Una reserva tiene a lo sumo un pago,
// y una reserva con pago ya no puede cancelarse, solo finalizarse.
type Pago struct {
	ID             int        `json:"id"`
	ReservaID      int        `json:"reservaId"`
	MontoBase      float64    `json:"montoBase"`
	MontoServicios float64    `json:"montoServicios"`
	MontoDescuento float64    `json:"montoDescuento"`
	MontoTotal     float64    `json:"montoTotal"`
	Metodo         MetodoPago `json:"metodo"`
	Estado         EstadoPago `json:"estado"`
	Referencia     string     `json:"referencia"`
	FechaPago      time.Time  `json:"fechaPago"`
}

// PagoRepository define las operaciones con pagos
type PagoRepository interface {
	// CreatePago crea un nuevo pago
	CreatePago(pago *Pago) error
	// GetPagoByReservaID obtiene el pago de una reserva, o nil si no existe
	GetPagoByReservaID(reservaID int) (*Pago, error)
}
